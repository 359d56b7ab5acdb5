package diff

// Kind tells whether a Change adds an element to the new state or drops one
// from the old state.
type Kind int

const (
	KindRemove Kind = iota
	KindInsert
)

// NoPairedOffset marks a Change that is not one half of a move.
const NoPairedOffset = -1

// Change is one structural edit. The Offset of an insertion is the element's
// position in the post-mutation state; the Offset of a removal is its
// position in the pre-mutation state. PairedOffset, when not NoPairedOffset,
// names the offset of the complementary change of the opposite kind that
// together with this one represents a single element move.
type Change[E any] struct {
	Kind         Kind
	Offset       int
	Element      E
	PairedOffset int
}

func Insert[E any](offset int, element E) Change[E] {
	return Change[E]{Kind: KindInsert, Offset: offset, Element: element, PairedOffset: NoPairedOffset}
}

func Remove[E any](offset int, element E) Change[E] {
	return Change[E]{Kind: KindRemove, Offset: offset, Element: element, PairedOffset: NoPairedOffset}
}

func InsertPaired[E any](offset int, element E, pairedOffset int) Change[E] {
	return Change[E]{Kind: KindInsert, Offset: offset, Element: element, PairedOffset: pairedOffset}
}

func RemovePaired[E any](offset int, element E, pairedOffset int) Change[E] {
	return Change[E]{Kind: KindRemove, Offset: offset, Element: element, PairedOffset: pairedOffset}
}

func (c Change[E]) Paired() bool {
	return c.PairedOffset != NoPairedOffset
}
