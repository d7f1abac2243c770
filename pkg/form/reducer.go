package form

// Reduce is the pure transition function. Actions naming unknown fields leave
// the state unchanged.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case SetValue:
		field, ok := state.Fields[a.Name]
		if !ok {
			return state
		}
		next := withFields(state)
		field.Value = a.Value
		field.Error = ""
		next.Fields[a.Name] = field
		return next

	case SetError:
		field, ok := state.Fields[a.Name]
		if !ok {
			return state
		}
		next := withFields(state)
		field.Error = a.Message
		next.Fields[a.Name] = field
		return next

	case SetTouched:
		field, ok := state.Fields[a.Name]
		if !ok {
			return state
		}
		next := withFields(state)
		field.Touched = true
		next.Fields[a.Name] = field
		return next

	case SubmitStarted:
		next := state
		next.IsSubmitting = true
		next.SubmitError = ""
		return next

	case ValidationFailed:
		next := withFields(state)
		for name, field := range next.Fields {
			field.Touched = true
			if msg, failed := a.Errors[name]; failed {
				field.Error = msg
			}
			next.Fields[name] = field
		}
		next.IsSubmitting = false
		return next

	case SubmitSucceeded:
		next := state
		next.IsSubmitting = false
		next.IsSubmitted = true
		return next

	case SubmitFailed:
		next := state
		next.IsSubmitting = false
		next.SubmitError = a.Message
		return next

	case SubmitSettled:
		next := state
		next.IsSubmitting = false
		return next

	case Reset:
		next := withFields(state)
		for name := range next.Fields {
			next.Fields[name] = FieldState{Name: name, Value: a.Initial[name]}
		}
		next.IsSubmitted = false
		next.SubmitError = ""
		return next

	default:
		return state
	}
}

func withFields(state State) State {
	next := state
	next.Fields = cloneFields(state.Fields)
	return next
}
