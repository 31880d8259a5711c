package app

import (
	"fmt"
	"strings"
)

// BookmarkletPage is the path of the page the bookmarklet opens.
const BookmarkletPage = "bookmarklet.html"

// Bookmarklet returns the javascript: link that opens the bookmarklet page
// for the current browser location. baseURL is the address the app is served
// from.
func Bookmarklet(baseURL string) string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return "javascript:window.open('" + encodeURI(baseURL) + BookmarkletPage +
		"%3F'%2BencodeURI(window.location.href)%2C'add-track'%2C%20'width%3D500%2Cheight%3D180')"
}

// uriReserved is what encodeURI leaves alone besides ASCII letters and
// digits.
const uriReserved = ";,/?:@&=+$-_.!~*'()#"

// encodeURI percent-encodes s like the browser's encodeURI.
func encodeURI(s string) string {
	var sb strings.Builder
	for _, b := range []byte(s) {
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
			sb.WriteByte(b)
		case b < 0x80 && strings.IndexByte(uriReserved, b) >= 0:
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, "%%%02X", b)
		}
	}
	return sb.String()
}
