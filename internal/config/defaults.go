package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"app_name":        "",
		"current_version": "",
		"update_url":      "",
		"timeout":         30,
		"show_progress":   true,
		"state_dir":       "~/.upcheck/state",
	}
}
