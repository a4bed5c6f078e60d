package internal

import "fmt"

// implKind tags which variant a cellImpl currently is.
type implKind uint8

const (
	implEmpty implKind = iota
	implText
	implFormula
)

// cellImpl is the tagged variant {Empty, Text, Formula} a cell can hold.
// Rather than a dynamic-dispatch interface hierarchy, it is modeled as a
// small closed struct switched on kind, avoiding an inheritance-style
// hierarchy for what is in practice a fixed, closed set of variants.
type cellImpl struct {
	kind    implKind
	text    string   // Text: the raw input, including a possible leading apostrophe.
	formula *Formula // Formula: the parsed AST.
}

func emptyImpl() cellImpl { return cellImpl{kind: implEmpty} }

func (c cellImpl) displayText() string {
	switch c.kind {
	case implEmpty:
		return ""
	case implText:
		return c.text
	case implFormula:
		return "=" + c.formula.CanonicalExpression()
	}
	return ""
}

func (c cellImpl) referencedCells() []Position {
	if c.kind != implFormula {
		return nil
	}
	return c.formula.ReferencedCells()
}

func (c cellImpl) evaluate(lookup Lookup) Value {
	switch c.kind {
	case implEmpty:
		return NumberValue(0)
	case implText:
		if len(c.text) > 0 && c.text[0] == '\'' {
			return TextValue(c.text[1:])
		}
		return TextValue(c.text)
	case implFormula:
		return c.formula.Evaluate(lookup)
	}
	return NumberValue(0)
}

// Cell is one addressable grid slot: its current impl, its own position,
// an optional memoized value, and the set of cells whose formulas currently
// reference it (upper references / reverse edges).
type Cell struct {
	pos       Position
	impl      cellImpl
	cache     *Value
	hasCache  bool
	upperRefs map[Position]struct{}

	// sheet provides the lookup used for cycle detection and evaluation;
	// a Cell never exists detached from the Sheet that owns its slot.
	sheet *Sheet
}

func newCell(sheet *Sheet, pos Position) *Cell {
	return &Cell{
		pos:       pos,
		impl:      emptyImpl(),
		upperRefs: make(map[Position]struct{}),
		sheet:     sheet,
	}
}

// GetText returns the impl's display text without evaluating it.
func (c *Cell) GetText() string {
	return c.impl.displayText()
}

// GetReferencedCells returns the impl's referenced positions, sorted and
// duplicate-free; empty for non-Formula cells.
func (c *Cell) GetReferencedCells() []Position {
	return c.impl.referencedCells()
}

// IsReferenced reports whether any other cell's formula currently reads c.
func (c *Cell) IsReferenced() bool {
	return len(c.upperRefs) > 0
}

// GetValue returns the cached value if present, otherwise evaluates the
// impl, memoizes, and returns it.
func (c *Cell) GetValue() Value {
	if c.hasCache {
		return *c.cache
	}
	v := c.impl.evaluate(c.sheet.lookup)
	c.cache = &v
	c.hasCache = true
	return v
}

func (c *Cell) clearCache() {
	c.cache = nil
	c.hasCache = false
}

// Set classifies text and installs the new impl:
//   - "" -> Empty
//   - "=" alone (length 1) -> Text, not Formula
//   - "=..." (length > 1) -> Formula
//   - anything else -> Text
//
// The write is atomic: a rejected FormulaSyntax or CircularDependency error
// leaves the cell and the reference graph completely unchanged.
func (c *Cell) Set(text string) error {
	newImpl, err := classify(text)
	if err != nil {
		return err
	}

	newRefs := newImpl.referencedCells()
	if err := c.checkAcyclic(newRefs); err != nil {
		return err
	}

	oldRefs := c.impl.referencedCells()
	c.impl = newImpl
	c.updateEdges(oldRefs, newRefs)
	c.invalidateDependents()
	return nil
}

// Clear is equivalent to Set("").
func (c *Cell) Clear() error {
	return c.Set("")
}

func classify(text string) (cellImpl, error) {
	switch {
	case text == "":
		return emptyImpl(), nil
	case len(text) > 1 && text[0] == '=':
		f, err := ParseFormula(text[1:])
		if err != nil {
			return cellImpl{}, err
		}
		return cellImpl{kind: implFormula, formula: f}, nil
	default:
		return cellImpl{kind: implText, text: text}, nil
	}
}

// acyclicFrame is one stack level of the iterative descent in checkAcyclic:
// the position being explored and how far through its children we've got.
type acyclicFrame struct {
	pos      Position
	children []Position
	next     int
}

func (c *Cell) childrenOf(pos Position) []Position {
	other := c.sheet.peek(pos)
	if other == nil {
		return nil // not-yet-existing referent is a leaf
	}
	return other.GetReferencedCells()
}

// checkAcyclic reports whether accepting newRefs as c's forward edges would
// create a path back to c. It walks the reference graph with two sets: onPath
// holds positions that are ancestors of the node currently being explored (c
// itself seeds onPath, since a path returning to any of these is a cycle),
// and done holds positions already fully explored with no path back to c --
// once a position is done, later arrivals at it short-circuit rather than
// re-walking it, so two independent references to a common cell (a diamond
// in the dependency graph) are not mistaken for a cycle.
func (c *Cell) checkAcyclic(newRefs []Position) error {
	onPath := map[Position]struct{}{c.pos: {}}
	done := map[Position]struct{}{}
	var stack []acyclicFrame

	enter := func(pos Position) error {
		if _, ancestor := onPath[pos]; ancestor {
			return fmt.Errorf("%w: %s", ErrCircularDependency, pos)
		}
		if _, explored := done[pos]; explored {
			return nil
		}
		onPath[pos] = struct{}{}
		stack = append(stack, acyclicFrame{pos: pos, children: c.childrenOf(pos)})
		return nil
	}

	for _, ref := range newRefs {
		if err := enter(ref); err != nil {
			return err
		}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(top.children) {
				delete(onPath, top.pos)
				done[top.pos] = struct{}{}
				stack = stack[:len(stack)-1]
				continue
			}
			child := top.children[top.next]
			top.next++
			if err := enter(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// updateEdges diffs oldRefs against newRefs and updates upper-reference
// sets on both sides so that, after Set returns, reverse edges exactly
// reflect the current forward edges. Referenced cells that do not yet
// exist are materialized as Empty.
func (c *Cell) updateEdges(oldRefs, newRefs []Position) {
	oldSet := toSet(oldRefs)
	newSet := toSet(newRefs)

	for pos := range oldSet {
		if _, stillThere := newSet[pos]; !stillThere {
			if target := c.sheet.peek(pos); target != nil {
				delete(target.upperRefs, c.pos)
			}
		}
	}
	for pos := range newSet {
		if _, wasThere := oldSet[pos]; !wasThere {
			target := c.sheet.materialize(pos)
			target.upperRefs[c.pos] = struct{}{}
		}
	}
}

func toSet(refs []Position) map[Position]struct{} {
	set := make(map[Position]struct{}, len(refs))
	for _, r := range refs {
		set[r] = struct{}{}
	}
	return set
}

// invalidateDependents resets the cache of c and every cell transitively
// reachable by following upper-reference edges from c.
func (c *Cell) invalidateDependents() {
	visited := map[Position]struct{}{}
	queue := []*Cell{c}
	for len(queue) > 0 {
		n := len(queue) - 1
		cur := queue[n]
		queue = queue[:n]

		if _, seen := visited[cur.pos]; seen {
			continue
		}
		visited[cur.pos] = struct{}{}
		cur.clearCache()

		for pos := range cur.upperRefs {
			if dep := c.sheet.peek(pos); dep != nil {
				queue = append(queue, dep)
			}
		}
	}
}
