package server

import _ "embed"

//go:embed static/index.html
var pageHTML []byte
