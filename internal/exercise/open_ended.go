package exercise

func (*OpenEnded) validate() error { return nil }

func (*OpenEnded) score(Input, bool) (Result, error) {
	return Result{}, ErrNotGradable
}

func (*OpenEnded) solutions() Input { return Input{} }
