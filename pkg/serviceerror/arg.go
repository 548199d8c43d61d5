package serviceerror

// Arg is a named diagnostic attribute attached to an Error. Safe args may be
// written to logs; unsafe args only appear in the error message.
type Arg struct {
	Name  string
	Value any
	Safe  bool
}

// SafeArg returns an arg that may be logged.
func SafeArg(name string, value any) Arg {
	return Arg{Name: name, Value: value, Safe: true}
}

// UnsafeArg returns an arg that must stay out of logs.
func UnsafeArg(name string, value any) Arg {
	return Arg{Name: name, Value: value}
}
