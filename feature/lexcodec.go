package feature

import (
	"bytes"
	"fmt"

	"github.com/arloliu/featlex/encoding"
	"github.com/arloliu/featlex/errs"
	"github.com/arloliu/featlex/format"
)

// Context is the metadata a lexicon entry may omit because the reader already
// knows it, usually from the entry written just before.
type Context struct {
	Kind           format.FeatureKind
	Package        string
	Classifier     string
	Identifier     string
	ByteIdentifier ByteString
}

// Indexer maps conjunction children to and from their lexicon indices.
type Indexer interface {
	LookupChild(f *Feature) (int, error)
	LookupKey(index int) (*Feature, error)
}

// LexWrite appends the lexicon-entry form of f to w and returns the context the
// next entry should be written against.
//
// Fields equal to assumed are replaced by a "same as assumed" marker, checked in
// this order: kind (0x0 marks the assumed kind), package, classifier, then the
// identifier in the representation the kind selects. A byte identifier elides
// its encoding and its bytes independently. Value fields are always written.
// Conjunction children are not inlined; their indices in ix are written as
// uvarints, so both children must already be interned.
func (f *Feature) LexWrite(w *encoding.Writer, ix Indexer, assumed Context) (Context, error) {
	next := assumed
	next.Kind, next.Package, next.Classifier = f.kind, f.pkg, f.classifier

	var left, right int
	if f.kind.IsConjunctive() {
		var err error
		if left, err = ix.LookupChild(f.left); err != nil {
			return assumed, fmt.Errorf("left child of %s: %w", f.name, err)
		}
		if right, err = ix.LookupChild(f.right); err != nil {
			return assumed, fmt.Errorf("right child of %s: %w", f.name, err)
		}
	}

	if f.kind == assumed.Kind {
		w.WriteUint8(0)
	} else {
		w.WriteUint8(uint8(f.kind))
	}
	w.WriteElidedString(f.pkg, assumed.Package)
	w.WriteElidedString(f.classifier, assumed.Classifier)

	switch f.kind.Identity() {
	case format.IdentityText:
		w.WriteElidedString(f.id, assumed.Identifier)
		next.Identifier = f.id
	case format.IdentityBytes:
		w.WriteElidedString(f.byteID.encoding, assumed.ByteIdentifier.encoding)
		w.WriteElidedBytes(f.byteID.data, bytes.Equal(f.byteID.data, assumed.ByteIdentifier.data))
		next.ByteIdentifier = f.byteID
	}

	writeValue(w, f)

	if f.kind.IsConjunctive() {
		w.WriteUvarint(uint64(left))
		w.WriteUvarint(uint64(right))
	}

	return next, nil
}

// LexRead decodes one entry written by LexWrite against the same assumed
// context, resolving conjunction children through ix. It returns the feature
// and the context for the next entry. On failure the feature is nil and the
// error wraps errs.ErrMalformedFeature with the offending field.
func LexRead(r *encoding.Reader, ix Indexer, assumed Context) (*Feature, Context, error) {
	next := assumed

	b, err := r.ReadUint8()
	if err != nil {
		return nil, assumed, malformed("kind", err)
	}
	kind := format.FeatureKind(b)
	if b == 0 {
		kind = assumed.Kind
	}
	if !kind.Valid() {
		return nil, assumed, malformed("kind", fmt.Errorf("%w: 0x%x", errs.ErrUnknownFeatureKind, uint8(kind)))
	}
	next.Kind = kind

	if next.Package, _, err = r.ReadElidedString(assumed.Package); err != nil {
		return nil, assumed, malformed("package", err)
	}
	if next.Classifier, _, err = r.ReadElidedString(assumed.Classifier); err != nil {
		return nil, assumed, malformed("classifier", err)
	}

	var (
		id     string
		byteID ByteString
	)
	switch kind.Identity() {
	case format.IdentityText:
		if id, _, err = r.ReadElidedString(assumed.Identifier); err != nil {
			return nil, assumed, malformed("identifier", err)
		}
		next.Identifier = id
	case format.IdentityBytes:
		if byteID.encoding, _, err = r.ReadElidedString(assumed.ByteIdentifier.encoding); err != nil {
			return nil, assumed, malformed("identifier encoding", err)
		}
		data, same, err := r.ReadElidedBytes()
		if err != nil {
			return nil, assumed, malformed("identifier", err)
		}
		if same {
			data = assumed.ByteIdentifier.data
		}
		byteID.data = data
		next.ByteIdentifier = byteID
	}

	v, err := readValue(r, kind)
	if err != nil {
		return nil, assumed, err
	}

	var left, right *Feature
	if kind.IsConjunctive() {
		if left, err = readChild(r, ix, "left child"); err != nil {
			return nil, assumed, err
		}
		if right, err = readChild(r, ix, "right child"); err != nil {
			return nil, assumed, err
		}
	}

	f, err := v.build(kind, next.Package, next.Classifier, id, byteID, left, right)
	if err != nil {
		return nil, assumed, err
	}

	return f, next, nil
}

func readChild(r *encoding.Reader, ix Indexer, field string) (*Feature, error) {
	index, err := r.ReadInt()
	if err != nil {
		return nil, malformed(field, err)
	}
	child, err := ix.LookupKey(index)
	if err != nil {
		return nil, malformed(field, err)
	}

	return child, nil
}
