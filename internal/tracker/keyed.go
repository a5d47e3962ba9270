package tracker

// Keyed follows a keyframe envelope over its accumulated time.
type Keyed struct {
	base
	env Envelope
	t   accum
	v   float64
}

func NewKeyed(name string, env Envelope, opts ...Option) (*Keyed, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(name, opts)
	if err != nil {
		return nil, err
	}
	k := &Keyed{base: b, env: env}
	k.v = k.clamp(env.Eval(0))
	return k, nil
}

func (k *Keyed) Get() float64 { return k.v }

// Set pins the value until the next Advance.
func (k *Keyed) Set(v float64) error {
	k.v = k.clamp(v)
	return nil
}

func (k *Keyed) Advance(dt float64) (float64, error) {
	if err := k.checkDT(dt); err != nil {
		return k.v, err
	}
	k.t.add(dt * k.scale)
	k.v = k.clamp(k.env.Eval(k.t.value()))
	return k.v, nil
}

// Done reports whether the last key has been reached.
func (k *Keyed) Done() bool { return k.t.value() >= k.env.End() }
