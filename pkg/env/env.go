// Package env keeps names of environment variables with special significance to
// quickread.
package env

// Environment variables with special significance to quickread.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	HOME                      = "HOME"
	QUICKREAD_CONFIG          = "QUICKREAD_CONFIG"
	QUICKREAD_DB              = "QUICKREAD_DB"
	QUICKREAD_TEST_TIME_SCALE = "QUICKREAD_TEST_TIME_SCALE"
	XDG_CONFIG_HOME           = "XDG_CONFIG_HOME"
	XDG_DATA_HOME             = "XDG_DATA_HOME"
)
