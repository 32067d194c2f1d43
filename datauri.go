package lqip

import "encoding/base64"

// DataURI formats data as a base64 data URI of the given mime type,
// usable as <img src=".."> or in CSS url('..').
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
