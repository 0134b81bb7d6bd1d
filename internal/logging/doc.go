// Package logging provides a zap-based logger shared by the hubdeck TUI and
// the topicd service.
//
// Logging is silent unless enabled through HUBDECK_LOG_LEVEL. The widget
// layer deliberately swallows recoverable failures (remote Topic ID
// generation, clipboard writes) after logging them here, so enabling debug
// logging is the way to observe those paths.
package logging
