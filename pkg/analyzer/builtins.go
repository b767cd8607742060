package analyzer

// RootEnvironment returns the pre-populated environment every analysis
// run starts from: EUL and PI of type Num, and print of type
// Func{[Any], Void}.
func RootEnvironment() *Environment {
	env := NewEnvironment()
	env, _ = env.AddToScope("EUL", NumType{})
	env, _ = env.AddToScope("PI", NumType{})
	env, _ = env.AddToScope("print", FuncType{Params: []Type{AnyType{}}, Ret: VoidType{}})
	return env
}
