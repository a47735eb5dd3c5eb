package optimize

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"os"
	"strconv"
)

// FloatParameter is a single named float64 parameter with bounds, a
// prior and a proposal function.
type FloatParameter interface {
	Name() string
	Get() float64
	Set(float64)
	SetMin(float64)
	SetMax(float64)
	GetMin() float64
	GetMax() float64
	SetOnChange(func())
	SetPriorFunc(func(float64) float64)
	SetProposalFunc(func(float64) float64)
	Prior() float64
	OldPrior() float64
	Propose()
	Accept(iter int)
	Reject()
	InRange() bool
	ValueInRange(float64) bool
	String() string
}

// FloatParameters is a slice of parameters.
type FloatParameters []FloatParameter

// Append appends a parameter.
func (p *FloatParameters) Append(par FloatParameter) {
	*p = append(*p, par)
}

// Names returns parameter names, reusing the slice if provided.
func (p FloatParameters) Names(is []string) (s []string) {
	if is == nil {
		s = make([]string, len(p))
	} else {
		s = is
	}
	for i, par := range p {
		s[i] = par.Name()
	}
	return
}

// Values returns parameter values, reusing the slice if provided.
func (p FloatParameters) Values(iv []float64) (v []float64) {
	if iv == nil {
		v = make([]float64, len(p))
	} else {
		v = iv
	}
	for i, par := range p {
		v[i] = par.Get()
	}
	return
}

// SetValues sets values of all the parameters.
func (p FloatParameters) SetValues(v []float64) error {
	if len(v) != len(p) {
		return errors.New("incorrect number of parameters")
	}
	for i, par := range p {
		par.Set(v[i])
	}
	return nil
}

// ValuesInRange returns true if all the values are in their
// parameter range.
func (p FloatParameters) ValuesInRange(vals []float64) bool {
	if len(vals) != len(p) {
		panic("incorrect number of parameters")
	}
	for i, par := range p {
		if !par.ValueInRange(vals[i]) {
			return false
		}
	}
	return true
}

// InRange returns true if all the current values are in range.
func (p FloatParameters) InRange() bool {
	for _, par := range p {
		if !par.InRange() {
			return false
		}
	}
	return true
}

// Update sets values from the source parameters.
func (p FloatParameters) Update(pSrc FloatParameters) {
	for i := range p {
		p[i].Set(pSrc[i].Get())
	}
}

// Randomize sets uniform random values within the parameter bounds.
func (p FloatParameters) Randomize(rng *rand.Rand) {
	for _, par := range p {
		d := par.GetMax() - par.GetMin()
		par.Set(par.GetMin() + rng.Float64()*d)
	}
}

// NamesString returns tab-separated parameter names.
func (p FloatParameters) NamesString() (s string) {
	for i, par := range p {
		if i != 0 {
			s += "\t"
		}
		s += par.Name()
	}
	return
}

// ValuesString returns tab-separated parameter values.
func (p FloatParameters) ValuesString() (s string) {
	for i, par := range p {
		if i != 0 {
			s += "\t"
		}
		s += par.String()
	}
	return
}

// ReadLine sets parameter values from a trajectory line (iteration
// and likelihood columns are skipped).
func (p FloatParameters) ReadLine(l string) error {
	v, err := ReadFloats(l)
	if err != nil {
		return err
	}
	if len(v) < 2 {
		return errors.New("short trajectory line")
	}
	return p.SetValues(v[2:])
}

// ReadFromJSON sets parameter values from a JSON file with a
// name->value object.
func (p FloatParameters) ReadFromJSON(fn string) error {
	b, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, &p)
}

// MarshalJSON creates a JSON object preserving the parameter order.
func (p FloatParameters) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, par := range p {
		if i != 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(par.Name())
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(par.Get())
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON sets parameter values from a JSON object; unknown
// names are an error, missing names keep their values.
func (p *FloatParameters) UnmarshalJSON(data []byte) error {
	m := make(map[string]float64)
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	byName := make(map[string]FloatParameter, len(*p))
	for _, par := range *p {
		byName[par.Name()] = par
	}
	for name, v := range m {
		par, ok := byName[name]
		if !ok {
			return errors.New("unknown parameter: " + name)
		}
		par.Set(v)
	}
	return nil
}

// BasicFloatParameter is a basic implementation of FloatParameter.
type BasicFloatParameter struct {
	*float64
	old          float64
	name         string
	priorFunc    func(float64) float64
	proposalFunc func(float64) float64
	min          float64
	max          float64
	onChange     func()
}

// NewBasicFloatParameter creates a new BasicFloatParameter with an
// unbounded range, a flat prior and no proposal function.
func NewBasicFloatParameter(par *float64, name string) *BasicFloatParameter {
	return &BasicFloatParameter{
		float64:   par,
		name:      name,
		priorFunc: FlatPrior(math.Inf(-1), math.Inf(+1), true, true),
		min:       math.Inf(-1),
		max:       math.Inf(+1),
	}
}

// Name returns the parameter name.
func (p *BasicFloatParameter) Name() string {
	return p.name
}

// Get returns the parameter value.
func (p *BasicFloatParameter) Get() float64 {
	return *p.float64
}

// Set sets the parameter value.
func (p *BasicFloatParameter) Set(v float64) {
	if *p.float64 == v {
		// do nothing if value has not changed
		return
	}
	*p.float64 = v
	if p.onChange != nil {
		p.onChange()
	}
}

// SetMin sets the lower bound.
func (p *BasicFloatParameter) SetMin(min float64) {
	p.min = min
}

// SetMax sets the upper bound.
func (p *BasicFloatParameter) SetMax(max float64) {
	p.max = max
}

// GetMin returns the lower bound.
func (p *BasicFloatParameter) GetMin() float64 {
	return p.min
}

// GetMax returns the upper bound.
func (p *BasicFloatParameter) GetMax() float64 {
	return p.max
}

// SetOnChange sets a function called on every value change.
func (p *BasicFloatParameter) SetOnChange(f func()) {
	p.onChange = f
}

// SetPriorFunc sets the prior log-density function.
func (p *BasicFloatParameter) SetPriorFunc(f func(float64) float64) {
	p.priorFunc = f
}

// SetProposalFunc sets the proposal function.
func (p *BasicFloatParameter) SetProposalFunc(f func(float64) float64) {
	p.proposalFunc = f
}

// Prior returns the prior log-density for the current value.
func (p *BasicFloatParameter) Prior() float64 {
	return p.priorFunc(*p.float64)
}

// OldPrior returns the prior log-density for the pre-proposal value.
func (p *BasicFloatParameter) OldPrior() float64 {
	return p.priorFunc(p.old)
}

// reflect puts an out-of-range value back into the range by
// reflecting it off the bounds.
func (p *BasicFloatParameter) reflect() {
	for *p.float64 < p.min || *p.float64 > p.max {
		if *p.float64 < p.min {
			*p.float64 = p.min + (p.min - *p.float64)
		}
		if *p.float64 > p.max {
			*p.float64 = p.max - (*p.float64 - p.max)
		}
	}
}

// Propose proposes a new value, saving the old one.
func (p *BasicFloatParameter) Propose() {
	p.old, *p.float64 = *p.float64, p.proposalFunc(*p.float64)
	p.reflect()
	if p.onChange != nil {
		p.onChange()
	}
}

// Accept accepts the proposed value.
func (p *BasicFloatParameter) Accept(iter int) {
}

// Reject restores the pre-proposal value.
func (p *BasicFloatParameter) Reject() {
	*p.float64, p.old = p.old, *p.float64
	if p.onChange != nil {
		p.onChange()
	}
}

// InRange returns true if the current value is in range.
func (p *BasicFloatParameter) InRange() bool {
	return p.ValueInRange(*p.float64)
}

// ValueInRange returns true if the value is in range.
func (p *BasicFloatParameter) ValueInRange(v float64) bool {
	return v >= p.min && v <= p.max
}

// String returns the value as a string.
func (p *BasicFloatParameter) String() string {
	return strconv.FormatFloat(*p.float64, 'f', 6, 64)
}
