/*
Package cookie collects the Set-Cookie directives a response carries.

A Jar holds at most one Directive per name; setting a name again replaces it in place.

	jar := cookie.NewJar()
	jar.Forever("theme", "dark")
	jar.Expire("session", "/", "")

	for _, line := range jar.Lines() {
		h.Add("Set-Cookie", line)
	}

Values are percent-encoded when serialized unless the Directive is Raw.
SetEncoded signs (and optionally encrypts) a value with gorilla/securecookie before storing it raw.
*/
package cookie
