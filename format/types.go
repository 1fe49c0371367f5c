package format

type (
	FeatureKind     uint8
	CompressionType uint8
	IdentityType    uint8
)

// Feature kinds. Zero is reserved: the lexicon codec uses it as the
// "same as assumed" marker, so no kind may ever be encoded as 0x0.
const (
	KindDiscrete            FeatureKind = 0x1 // KindDiscrete is a primitive discrete feature with a text identifier.
	KindDiscreteBytes       FeatureKind = 0x2 // KindDiscreteBytes is a primitive discrete feature with a byte identifier.
	KindReal                FeatureKind = 0x3 // KindReal is a primitive real-valued feature with a text identifier.
	KindRealBytes           FeatureKind = 0x4 // KindRealBytes is a primitive real-valued feature with a byte identifier.
	KindDiscreteConjunctive FeatureKind = 0x5 // KindDiscreteConjunctive is the conjunction of two discrete features.
	KindRealConjunctive     FeatureKind = 0x6 // KindRealConjunctive is a real-valued conjunction of two features.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	IdentityNone  IdentityType = 0x0 // IdentityNone marks a conjunction, whose identity comes from its children.
	IdentityText  IdentityType = 0x1 // IdentityText marks a text identifier.
	IdentityBytes IdentityType = 0x2 // IdentityBytes marks a byte-encoded identifier.
)

// Valid reports whether k is one of the defined feature kinds.
func (k FeatureKind) Valid() bool {
	return k >= KindDiscrete && k <= KindRealConjunctive
}

// IsConjunctive reports whether features of this kind are built from two children.
func (k FeatureKind) IsConjunctive() bool {
	return k == KindDiscreteConjunctive || k == KindRealConjunctive
}

// IsDiscrete reports whether features of this kind carry a value index.
func (k FeatureKind) IsDiscrete() bool {
	return k == KindDiscrete || k == KindDiscreteBytes || k == KindDiscreteConjunctive
}

// IsReal reports whether features of this kind carry an arbitrary strength.
func (k FeatureKind) IsReal() bool {
	return k == KindReal || k == KindRealBytes || k == KindRealConjunctive
}

// Identity returns the identity representation used by features of this kind.
func (k FeatureKind) Identity() IdentityType {
	switch k {
	case KindDiscrete, KindReal:
		return IdentityText
	case KindDiscreteBytes, KindRealBytes:
		return IdentityBytes
	default:
		return IdentityNone
	}
}

func (k FeatureKind) String() string {
	switch k {
	case KindDiscrete:
		return "Discrete"
	case KindDiscreteBytes:
		return "DiscreteBytes"
	case KindReal:
		return "Real"
	case KindRealBytes:
		return "RealBytes"
	case KindDiscreteConjunctive:
		return "DiscreteConjunctive"
	case KindRealConjunctive:
		return "RealConjunctive"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a compression name as printed by CompressionType.String
// back to its value. Matching is case-sensitive.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "None":
		return CompressionNone, true
	case "Zstd":
		return CompressionZstd, true
	case "S2":
		return CompressionS2, true
	case "LZ4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (t IdentityType) String() string {
	switch t {
	case IdentityNone:
		return "None"
	case IdentityText:
		return "Text"
	case IdentityBytes:
		return "Bytes"
	default:
		return "Unknown"
	}
}
