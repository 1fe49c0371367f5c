package feature

import (
	"fmt"
	"strconv"

	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
)

// StringValue renders the feature's value as text.
//
// Discrete primitives return their value, real features the shortest decimal
// form of their strength, and discrete conjunctions the concatenation of their
// children's values with no separator.
func (f *Feature) StringValue() string {
	switch f.kind {
	case format.KindDiscrete:
		return f.value
	case format.KindDiscreteBytes:
		return ByteString{encoding: f.byteID.encoding, data: f.byteValue}.String()
	case format.KindDiscreteConjunctive:
		return f.left.StringValue() + f.right.StringValue()
	default:
		return formatStrength(f.strength)
	}
}

// ByteStringValue renders the feature's value as a byte string. Discrete
// conjunctions join their children's values with '&' in the left child's
// encoding.
func (f *Feature) ByteStringValue() ByteString {
	switch f.kind {
	case format.KindDiscreteBytes:
		return ByteString{encoding: f.byteID.encoding, data: f.byteValue}
	case format.KindDiscreteConjunctive:
		l := f.left.ByteStringValue()
		amp, err := NewByteString("&", l.encoding)
		if err != nil {
			amp = ByteString{encoding: l.encoding, data: []byte{'&'}}
		}

		return l.Append(amp, f.right.ByteStringValue())
	default:
		return ByteString{encoding: UTF8, data: []byte(f.StringValue())}
	}
}

// ValueEquals reports whether the feature's rendered value is v.
func (f *Feature) ValueEquals(v string) bool {
	return f.StringValue() == v
}

// WithStrength returns a feature identical to f except for its strength.
//
// Discrete features always have strength 1: WithStrength(1) returns f and any
// other strength fails with errs.ErrStrengthNotRepresentable.
func (f *Feature) WithStrength(s float64) (*Feature, error) {
	if f.kind.IsDiscrete() {
		if s == 1 {
			return f, nil
		}

		return nil, fmt.Errorf("%w: %s feature with strength %v", errs.ErrStrengthNotRepresentable, f.kind, s)
	}

	c := *f
	c.strength = s

	return &c, nil
}

// MakeReal returns the real-valued counterpart of f.
//
// A discrete conjunction becomes a real conjunction over the same children. A
// boolean discrete primitive (two values) keeps its identity and takes its
// value index as strength; any other discrete primitive folds its value into
// the identifier as "id_value" with strength 1. Real features are returned
// unchanged.
func (f *Feature) MakeReal() *Feature {
	switch f.kind {
	case format.KindDiscreteConjunctive:
		return newConjunction(format.KindRealConjunctive, f.pkg, f.classifier, f.left, f.right, -1, 0, 1)
	case format.KindDiscrete:
		if f.totalValues == 2 {
			return NewReal(f.pkg, f.classifier, f.id, float64(f.valueIndex))
		}

		return NewReal(f.pkg, f.classifier, f.id+"_"+f.value, 1)
	case format.KindDiscreteBytes:
		if f.totalValues == 2 {
			return NewRealBytes(f.pkg, f.classifier, f.byteID, float64(f.valueIndex))
		}
		sep := ByteString{encoding: f.byteID.encoding, data: []byte{'_'}}
		if enc, err := NewByteString("_", f.byteID.encoding); err == nil {
			sep = enc
		}
		id := f.byteID.Append(sep, ByteString{encoding: f.byteID.encoding, data: f.byteValue})

		return NewRealBytes(f.pkg, f.classifier, id, 1)
	default:
		return f
	}
}

// Encode returns f with its identifier and value held as byte strings in the
// named character encoding. f itself is returned when nothing changes: the
// scheme is empty, f is already in that encoding, or f is a conjunction whose
// children are both unchanged.
func (f *Feature) Encode(scheme string) (*Feature, error) {
	if scheme == "" {
		return f, nil
	}

	switch f.kind {
	case format.KindDiscrete:
		id, err := NewByteString(f.id, scheme)
		if err != nil {
			return nil, err
		}
		value, err := NewByteString(f.value, id.encoding)
		if err != nil {
			return nil, err
		}

		return NewDiscreteBytes(f.pkg, f.classifier, id, value.data, f.valueIndex, f.totalValues)

	case format.KindReal:
		id, err := NewByteString(f.id, scheme)
		if err != nil {
			return nil, err
		}

		return NewRealBytes(f.pkg, f.classifier, id, f.strength), nil

	case format.KindDiscreteBytes:
		id, err := f.byteID.Transcode(scheme)
		if err != nil {
			return nil, err
		}
		if id.encoding == f.byteID.encoding {
			return f, nil
		}
		value, err := ByteString{encoding: f.byteID.encoding, data: f.byteValue}.Transcode(id.encoding)
		if err != nil {
			return nil, err
		}

		return NewDiscreteBytes(f.pkg, f.classifier, id, value.data, f.valueIndex, f.totalValues)

	case format.KindRealBytes:
		id, err := f.byteID.Transcode(scheme)
		if err != nil {
			return nil, err
		}
		if id.encoding == f.byteID.encoding {
			return f, nil
		}

		return NewRealBytes(f.pkg, f.classifier, id, f.strength), nil

	default:
		left, err := f.left.Encode(scheme)
		if err != nil {
			return nil, err
		}
		right, err := f.right.Encode(scheme)
		if err != nil {
			return nil, err
		}
		if left == f.left && right == f.right {
			return f, nil
		}

		return newConjunction(f.kind, f.pkg, f.classifier, left, right, f.valueIndex, f.totalValues, f.strength), nil
	}
}

func formatStrength(s float64) string {
	return strconv.FormatFloat(s, 'g', -1, 64)
}
