package validation

// Failure is one rule violation.
type Failure struct {
	Field   string
	Message string
}

// Result is the outcome of one submission attempt. Values holds every
// present field, valid or not.
type Result struct {
	Valid    bool
	Values   map[string]string
	Failures []Failure
}

// Failed reports whether field has a failure.
func (r Result) Failed(field string) bool {
	for _, failure := range r.Failures {
		if failure.Field == field {
			return true
		}
	}
	return false
}

// Messages maps each failing field to its message.
func (r Result) Messages() map[string]string {
	if len(r.Failures) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.Failures))
	for _, failure := range r.Failures {
		out[failure.Field] = failure.Message
	}
	return out
}

// Validate evaluates every rule whose field is present in values. Rules for
// absent fields are skipped and evaluation never stops at the first
// failure.
func Validate(rules []Rule, values map[string]string) Result {
	result := Result{
		Valid:  true,
		Values: make(map[string]string, len(values)),
	}
	for _, rule := range rules {
		raw, present := values[rule.Field]
		if !present {
			continue
		}
		value := rule.Normalize(raw)
		result.Values[rule.Field] = value

		if rule.Check == nil || rule.Check(value) {
			continue
		}
		result.Valid = false
		result.Failures = append(result.Failures, Failure{
			Field:   rule.Field,
			Message: rule.Message,
		})
	}
	return result
}
