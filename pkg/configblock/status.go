package configblock

// Origin tells where the served parameters came from.
type Origin int

const (
	OriginNone     Origin = iota // Init has not run
	OriginRecord                 // Loaded from a valid persisted record
	OriginDefaults               // Fell back to the compiled-in table
)

func (o Origin) String() string {
	switch o {
	case OriginNone:
		return "none"
	case OriginRecord:
		return "record"
	case OriginDefaults:
		return "defaults"
	default:
		return "unknown"
	}
}

// Status is the outcome of loading a block.
type Status struct {
	Origin Origin
	Err    error // Classified reason when Origin is OriginDefaults
}

// UsedDefaults reports whether the persisted record was rejected.
func (s Status) UsedDefaults() bool {
	return s.Origin == OriginDefaults
}

func (s Status) String() string {
	if s.Err != nil {
		return s.Origin.String() + ": " + s.Err.Error()
	}
	return s.Origin.String()
}
