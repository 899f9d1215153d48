package factory

// merge folds overrides into defaults, later maps winning.
func merge(defaults map[string]any, overrides []map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults))

	for key, value := range defaults {
		merged[key] = value
	}

	for _, data := range overrides {
		for key, value := range data {
			merged[key] = value
		}
	}

	return merged
}
