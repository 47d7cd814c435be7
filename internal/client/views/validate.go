package views

import "strings"

// required adds msg for name when the trimmed value is empty.
func required(errs map[string]string, fields map[string]string, name, msg string) {
	if strings.TrimSpace(fields[name]) == "" {
		errs[name] = msg
	}
}

// minLen adds msg for name when the value is shorter than n. Skipped if
// a required error was already recorded for the field.
func minLen(errs map[string]string, fields map[string]string, name string, n int, msg string) {
	if _, already := errs[name]; already {
		return
	}
	if len(fields[name]) < n {
		errs[name] = msg
	}
}

// email adds msg for name when the value does not look like an address.
// A coarse check; the backend stays authoritative.
func email(errs map[string]string, fields map[string]string, name, msg string) {
	if _, already := errs[name]; already {
		return
	}
	v := fields[name]
	at := strings.Index(v, "@")
	if at < 1 || at == len(v)-1 || !strings.Contains(v[at:], ".") {
		errs[name] = msg
	}
}
