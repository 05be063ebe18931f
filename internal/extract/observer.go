package extract

// Observer receives progress callbacks from the extractor. The core never
// writes to the console itself; the caller injects whatever reporting it
// wants at these extension points.
type Observer interface {
	// DocumentStart fires once per document before any rule runs.
	DocumentStart(language Language, textLen int)
	// FieldResolved fires after each rule's field (and its derived
	// fields) have been written, with the raw match count.
	FieldResolved(key FieldKey, rawMatches int)
}

// NopObserver discards all callbacks.
type NopObserver struct{}

func (NopObserver) DocumentStart(Language, int) {}
func (NopObserver) FieldResolved(FieldKey, int) {}
