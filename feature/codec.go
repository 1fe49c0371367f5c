package feature

import (
	"fmt"

	"github.com/arloliu/featlex/encoding"
	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
)

// MaxDepth bounds the nesting of decoded conjunctions so a hostile stream
// cannot exhaust the stack.
const MaxDepth = 256

// Write appends the self-describing form of f to w.
//
// The record holds everything needed to rebuild f without any shared context:
//
//	kind            uint8
//	package         string
//	classifier      string
//	identity        uint8 (0 none, 1 text, 2 bytes)
//	  text:         string
//	  bytes:        string encoding, bytes data
//	value fields    per kind
//	  Discrete:            string value, varint valueIndex, varint totalValues
//	  DiscreteBytes:       bytes value, varint valueIndex, varint totalValues
//	  Real, RealBytes:     float64 strength
//	  DiscreteConjunctive: varint valueIndex, varint totalValues
//	  RealConjunctive:     float64 strength
//	children        left record, right record (conjunctions only)
func Write(w *encoding.Writer, f *Feature) error {
	if f == nil {
		return errs.ErrNilFeature
	}

	w.WriteUint8(uint8(f.kind))
	w.WriteString(f.pkg)
	w.WriteString(f.classifier)

	identity := f.kind.Identity()
	w.WriteUint8(uint8(identity))
	switch identity {
	case format.IdentityText:
		w.WriteString(f.id)
	case format.IdentityBytes:
		w.WriteString(f.byteID.encoding)
		w.WriteBytes(f.byteID.data)
	}

	writeValue(w, f)

	if f.kind.IsConjunctive() {
		if err := Write(w, f.left); err != nil {
			return err
		}

		return Write(w, f.right)
	}

	return nil
}

// writeValue appends the value fields shared by both wire forms.
func writeValue(w *encoding.Writer, f *Feature) {
	switch f.kind {
	case format.KindDiscrete:
		w.WriteString(f.value)
	case format.KindDiscreteBytes:
		w.WriteBytes(f.byteValue)
	}

	if f.kind.IsDiscrete() {
		w.WriteVarint(int64(f.valueIndex))
		w.WriteVarint(int64(f.totalValues))
	} else {
		w.WriteFloat64(f.strength)
	}
}

// Read decodes one record written by Write. It never returns a partially
// decoded feature: on failure the result is nil and the error wraps
// errs.ErrMalformedFeature with the name of the offending field.
func Read(r *encoding.Reader) (*Feature, error) {
	return read(r, 0)
}

func read(r *encoding.Reader, depth int) (*Feature, error) {
	if depth > MaxDepth {
		return nil, malformed("children", fmt.Errorf("nesting deeper than %d", MaxDepth))
	}

	b, err := r.ReadUint8()
	if err != nil {
		return nil, malformed("kind", err)
	}
	kind := format.FeatureKind(b)
	if !kind.Valid() {
		return nil, malformed("kind", fmt.Errorf("%w: 0x%x", errs.ErrUnknownFeatureKind, b))
	}

	pkg, err := r.ReadString()
	if err != nil {
		return nil, malformed("package", err)
	}
	classifier, err := r.ReadString()
	if err != nil {
		return nil, malformed("classifier", err)
	}

	b, err = r.ReadUint8()
	if err != nil {
		return nil, malformed("identity", err)
	}
	if format.IdentityType(b) != kind.Identity() {
		return nil, malformed("identity", fmt.Errorf("%w: %s for %s", errs.ErrIdentityMismatch, format.IdentityType(b), kind))
	}

	var (
		id     string
		byteID ByteString
	)
	switch kind.Identity() {
	case format.IdentityText:
		if id, err = r.ReadString(); err != nil {
			return nil, malformed("identifier", err)
		}
	case format.IdentityBytes:
		if byteID.encoding, err = r.ReadString(); err != nil {
			return nil, malformed("identifier encoding", err)
		}
		if byteID.data, err = r.ReadBytes(); err != nil {
			return nil, malformed("identifier", err)
		}
	}

	v, err := readValue(r, kind)
	if err != nil {
		return nil, err
	}

	var left, right *Feature
	if kind.IsConjunctive() {
		if left, err = read(r, depth+1); err != nil {
			return nil, err
		}
		if right, err = read(r, depth+1); err != nil {
			return nil, err
		}
	}

	return v.build(kind, pkg, classifier, id, byteID, left, right)
}

// fieldValues holds the decoded value fields of either wire form.
type fieldValues struct {
	value       string
	byteValue   []byte
	valueIndex  int16
	totalValues int16
	strength    float64
}

func readValue(r *encoding.Reader, kind format.FeatureKind) (fieldValues, error) {
	var (
		v   fieldValues
		err error
	)

	switch kind {
	case format.KindDiscrete:
		if v.value, err = r.ReadString(); err != nil {
			return v, malformed("value", err)
		}
	case format.KindDiscreteBytes:
		if v.byteValue, err = r.ReadBytes(); err != nil {
			return v, malformed("value", err)
		}
	}

	if !kind.IsDiscrete() {
		if v.strength, err = r.ReadFloat64(); err != nil {
			return v, malformed("strength", err)
		}

		return v, nil
	}

	if v.valueIndex, err = r.ReadInt16(); err != nil {
		return v, malformed("value index", err)
	}
	if v.totalValues, err = r.ReadInt16(); err != nil {
		return v, malformed("total values", err)
	}

	return v, nil
}

// build runs the decoded fields through the constructors so decoded features
// satisfy the same invariants as constructed ones.
func (v fieldValues) build(kind format.FeatureKind, pkg, classifier, id string, byteID ByteString, left, right *Feature) (*Feature, error) {
	var (
		f   *Feature
		err error
	)

	switch kind {
	case format.KindDiscrete:
		f, err = NewDiscrete(pkg, classifier, id, v.value, v.valueIndex, v.totalValues)
	case format.KindDiscreteBytes:
		f, err = NewDiscreteBytes(pkg, classifier, byteID, v.byteValue, v.valueIndex, v.totalValues)
	case format.KindReal:
		f = NewReal(pkg, classifier, id, v.strength)
	case format.KindRealBytes:
		f = NewRealBytes(pkg, classifier, byteID, v.strength)
	case format.KindDiscreteConjunctive:
		f, err = NewDiscreteConjunctionWithValue(pkg, classifier, left, right, v.valueIndex, v.totalValues)
	case format.KindRealConjunctive:
		f, err = NewRealConjunctionWithStrength(pkg, classifier, left, right, v.strength)
	}
	if err != nil {
		return nil, malformed("value", err)
	}

	return f, nil
}

func malformed(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrMalformedFeature, field, err)
}
