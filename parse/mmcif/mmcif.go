package mmcif

// mmcif implements the object tree behind mmCIF-family data files, with
// deterministic semantics and safe post-build operations.
//
// Scope:
// - Explicit ownership tree (File / DataBlock / SaveFrame / Category / Item)
// - Construct-or-fetch child factories at every level
// - Scalar-to-column promotion on repeated value insertion
// - Recycle-bin removal (children are moved, never destroyed)
// - Literal value formatting and CIF text emission
//
// Non-goals (by design):
// - Tokenizing raw CIF text (the import side consumes an already-parsed
//   nested mapping)
// - Schema / dictionary validation
// - Restoring removed children
//
// This implementation is suitable for production use as the model layer of
// CIF producing tools.

import (
	"log/slog"
	"maps"
	"slices"
)

// DefaultValueType tags values whose serialization type is unknown.
const DefaultValueType = "string"

// =========================
// Item
// =========================

// Item holds either one scalar value or one ordered column of values,
// with parallel per-value type tags and source line numbers. Items that
// are columns make their owning Category a looped (table) category.
type Item struct {
	id     string
	vals   []any
	types  []string
	lines  []int
	column bool
	parent *Category
}

// NewItem returns an Item that is not yet registered with a Category.
func NewItem(name string) *Item {
	return &Item{id: name}
}

func (it *Item) ID() string { return it.id }

// IsColumn reports whether the item holds an ordered column of values.
func (it *Item) IsColumn() bool { return it.column }

// Len is the number of stored values. A scalar item has length 1.
func (it *Item) Len() int { return len(it.vals) }

// SetValue inserts one value, in call order. The first call makes the item
// a scalar; the second promotes it to a two-entry column; later calls
// append. A first call carrying a multi-element sequence enters the column
// state immediately, and a single-element sequence is unwrapped to its
// scalar. A nil value is an explicit null entry, not a removal.
func (it *Item) SetValue(value any, valueType string, line int) {
	switch {
	case it.column:
		it.vals = append(it.vals, value)
		it.types = append(it.types, valueType)
		it.lines = append(it.lines, line)

	case len(it.vals) == 0 || it.vals[0] == nil:
		if seq, ok := value.([]any); ok {
			switch {
			case len(seq) == 1:
				value = seq[0]
			case len(seq) > 1:
				it.vals = append(it.vals[:0], seq...)
				it.types = it.types[:0]
				it.lines = it.lines[:0]
				for range seq {
					it.types = append(it.types, valueType)
					it.lines = append(it.lines, line)
				}
				it.column = true
				it.markTable()
				return
			}
		}
		it.vals = append(it.vals[:0], value)
		it.types = append(it.types[:0], valueType)
		it.lines = append(it.lines[:0], line)

	default: // scalar with a value: promote to a column
		it.vals = append(it.vals, value)
		it.types = append(it.types, valueType)
		it.lines = append(it.lines, line)
		it.column = true
		it.markTable()
	}
}

func (it *Item) markTable() {
	if it.parent != nil {
		it.parent.isTable = true
	}
}

// RawValue returns the stored representation verbatim: the scalar, the
// column as a []any, or nil when nothing has been set.
func (it *Item) RawValue() any {
	if it.column {
		return it.vals
	}
	if len(it.vals) == 0 {
		return nil
	}
	return it.vals[0]
}

// FormattedValue returns the value as it must appear in CIF text: a
// single token for a scalar, a []string of tokens for a column. Null
// entries render as ".".
func (it *Item) FormattedValue() any {
	if it.column {
		out := make([]string, len(it.vals))
		for i, v := range it.vals {
			out[i] = FormatValue(v)
		}
		return out
	}
	if len(it.vals) == 0 {
		return "."
	}
	return FormatValue(it.vals[0])
}

// ValueType returns the serialization hint, mirroring the shape of
// RawValue (one tag, or a []string for a column).
func (it *Item) ValueType() any {
	if it.column {
		return it.types
	}
	if len(it.types) == 0 {
		return DefaultValueType
	}
	return it.types[0]
}

// SourceLine returns the line number diagnostic, mirroring the shape of
// RawValue. -1 marks an unknown origin.
func (it *Item) SourceLine() any {
	if it.column {
		return it.lines
	}
	if len(it.lines) == 0 {
		return -1
	}
	return it.lines[0]
}

// Reset clears every value to null in place. Column shape and the column
// flag are preserved.
func (it *Item) Reset() {
	for i := range it.vals {
		it.vals[i] = nil
		it.types[i] = ""
	}
}

// Remove moves the item from its Category into the Category's recycle
// bin. It reports false when the item is not registered anywhere.
func (it *Item) Remove() bool {
	if it.parent == nil {
		return false
	}
	return it.parent.removeItem(it)
}

// =========================
// Category
// =========================

// Category owns Items by name. It is looped (a table) once any owned
// item is a column.
type Category struct {
	id         string
	items      map[string]*Item
	order      []string
	recycleBin map[string]*Item
	isTable    bool
	maxTagLen  int
	parent     categoryHost
}

// categoryHost is the owner of a Category: a DataBlock or a SaveFrame.
type categoryHost interface {
	removeCategory(c *Category) bool
}

// NewCategory returns a Category that is not yet registered. A leading
// underscore run is stripped from the id.
func NewCategory(id string) *Category {
	return &Category{
		id:         stripUnderscore(id),
		items:      make(map[string]*Item),
		recycleBin: make(map[string]*Item),
	}
}

func (c *Category) ID() string { return c.id }

// IsTable reports whether any owned item is a column.
func (c *Category) IsTable() bool { return c.isTable }

// SetItem returns the existing item of that name, or constructs and
// registers a new one.
func (c *Category) SetItem(name string) *Item {
	if it, ok := c.items[name]; ok {
		return it
	}
	return c.register(NewItem(name))
}

// PutItem registers a pre-built item unless one with the same id is
// already present, in which case the registered one wins and the given
// item is discarded.
func (c *Category) PutItem(it *Item) *Item {
	if it == nil {
		return nil
	}
	if have, ok := c.items[it.id]; ok {
		return have
	}
	return c.register(it)
}

func (c *Category) register(it *Item) *Item {
	it.parent = c
	c.items[it.id] = it
	c.order = append(c.order, it.id)
	if it.column {
		c.isTable = true
	}
	if l := len("_" + c.id + "." + it.id); l > c.maxTagLen {
		c.maxTagLen = l
	}
	return it
}

// Item returns the live item of that name, or nil. It never constructs.
func (c *Category) Item(name string) *Item { return c.items[name] }

// ItemNames lists live item names in insertion order.
func (c *Category) ItemNames() []string { return slices.Clone(c.order) }

// Items lists live items in insertion order.
func (c *Category) Items() []*Item {
	out := make([]*Item, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.items[name])
	}
	return out
}

// RemoveItem moves the named item into the recycle bin. False when no
// live item has that name, so repeated removal is harmless.
func (c *Category) RemoveItem(name string) bool {
	it, ok := c.items[name]
	if !ok {
		return false
	}
	return c.removeItem(it)
}

func (c *Category) removeItem(it *Item) bool {
	if have, ok := c.items[it.id]; !ok || have != it {
		return false
	}
	delete(c.items, it.id)
	c.order = dropName(c.order, it.id)
	c.recycleBin[it.id] = it
	return true
}

// RecycleBin exposes removed items by name, for inspection only.
func (c *Category) RecycleBin() map[string]*Item { return c.recycleBin }

// Remove moves the category from its owner into the owner's recycle bin.
func (c *Category) Remove() bool {
	if c.parent == nil {
		return false
	}
	return c.parent.removeCategory(c)
}

// =========================
// SaveFrame
// =========================

// SaveFrame owns Categories by name. It only occurs in dictionary-style
// CIF files, nested inside a DataBlock.
type SaveFrame struct {
	id         string
	categories map[string]*Category
	order      []string
	recycleBin map[string]*Category
	parent     *DataBlock
}

// NewSaveFrame returns a SaveFrame that is not yet registered.
func NewSaveFrame(id string) *SaveFrame {
	return &SaveFrame{
		id:         id,
		categories: make(map[string]*Category),
		recycleBin: make(map[string]*Category),
	}
}

func (s *SaveFrame) ID() string { return s.id }

// UpdateID renames the save frame, re-keying the owning DataBlock.
func (s *SaveFrame) UpdateID(id string) {
	if s.parent != nil {
		delete(s.parent.saveFrames, s.id)
		s.parent.saveFrames[id] = s
		renameInOrder(s.parent.frameOrder, s.id, id)
	}
	s.id = id
}

// SetCategory returns the existing category of that name (leading
// underscores ignored), or constructs and registers a new one.
func (s *SaveFrame) SetCategory(name string) *Category {
	if c, ok := s.categories[stripUnderscore(name)]; ok {
		return c
	}
	return s.registerCategory(NewCategory(name))
}

// PutCategory registers a pre-built category unless its id is taken, in
// which case the registered one wins.
func (s *SaveFrame) PutCategory(c *Category) *Category {
	if c == nil {
		return nil
	}
	if have, ok := s.categories[c.id]; ok {
		return have
	}
	return s.registerCategory(c)
}

func (s *SaveFrame) registerCategory(c *Category) *Category {
	c.parent = s
	s.categories[c.id] = c
	s.order = append(s.order, c.id)
	return c
}

// Category returns the live category of that name, or nil.
func (s *SaveFrame) Category(name string) *Category {
	return s.categories[stripUnderscore(name)]
}

// CategoryIDs lists live category ids in insertion order.
func (s *SaveFrame) CategoryIDs() []string { return slices.Clone(s.order) }

// Categories lists live categories in insertion order.
func (s *SaveFrame) Categories() []*Category {
	out := make([]*Category, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.categories[id])
	}
	return out
}

// RemoveCategory moves the named category into the recycle bin.
func (s *SaveFrame) RemoveCategory(name string) bool {
	c, ok := s.categories[stripUnderscore(name)]
	if !ok {
		return false
	}
	return s.removeCategory(c)
}

func (s *SaveFrame) removeCategory(c *Category) bool {
	if have, ok := s.categories[c.id]; !ok || have != c {
		return false
	}
	delete(s.categories, c.id)
	s.order = dropName(s.order, c.id)
	s.recycleBin[c.id] = c
	return true
}

// RecycleBin exposes removed categories by name, for inspection only.
func (s *SaveFrame) RecycleBin() map[string]*Category { return s.recycleBin }

// Remove moves the save frame from its DataBlock into the DataBlock's
// recycle bin.
func (s *SaveFrame) Remove() bool {
	if s.parent == nil {
		return false
	}
	return s.parent.removeSaveFrame(s)
}

// =========================
// DataBlock
// =========================

// DataBlock owns Categories and SaveFrames by name.
type DataBlock struct {
	id         string
	categories map[string]*Category
	catOrder   []string
	saveFrames map[string]*SaveFrame
	frameOrder []string
	recycleBin map[string]any
	parent     *File
}

// NewDataBlock returns a DataBlock that is not yet registered.
func NewDataBlock(id string) *DataBlock {
	return &DataBlock{
		id:         id,
		categories: make(map[string]*Category),
		saveFrames: make(map[string]*SaveFrame),
		recycleBin: make(map[string]any),
	}
}

func (b *DataBlock) ID() string { return b.id }

// UpdateID renames the block, re-keying the owning File.
func (b *DataBlock) UpdateID(id string) {
	if b.parent != nil {
		delete(b.parent.blocks, b.id)
		b.parent.blocks[id] = b
		renameInOrder(b.parent.order, b.id, id)
	}
	b.id = id
}

// -------- categories --------

// SetCategory returns the existing category of that name (leading
// underscores ignored), or constructs and registers a new one.
func (b *DataBlock) SetCategory(name string) *Category {
	if c, ok := b.categories[stripUnderscore(name)]; ok {
		return c
	}
	return b.registerCategory(NewCategory(name))
}

// PutCategory registers a pre-built category unless its id is taken, in
// which case the registered one wins.
func (b *DataBlock) PutCategory(c *Category) *Category {
	if c == nil {
		return nil
	}
	if have, ok := b.categories[c.id]; ok {
		return have
	}
	return b.registerCategory(c)
}

func (b *DataBlock) registerCategory(c *Category) *Category {
	c.parent = b
	b.categories[c.id] = c
	b.catOrder = append(b.catOrder, c.id)
	return c
}

// Category returns the live category of that name, or nil.
func (b *DataBlock) Category(name string) *Category {
	return b.categories[stripUnderscore(name)]
}

// CategoryIDs lists live category ids in insertion order.
func (b *DataBlock) CategoryIDs() []string { return slices.Clone(b.catOrder) }

// Categories lists live categories in insertion order.
func (b *DataBlock) Categories() []*Category {
	out := make([]*Category, 0, len(b.catOrder))
	for _, id := range b.catOrder {
		out = append(out, b.categories[id])
	}
	return out
}

// RemoveCategory moves the named category into the recycle bin.
func (b *DataBlock) RemoveCategory(name string) bool {
	c, ok := b.categories[stripUnderscore(name)]
	if !ok {
		return false
	}
	return b.removeCategory(c)
}

func (b *DataBlock) removeCategory(c *Category) bool {
	if have, ok := b.categories[c.id]; !ok || have != c {
		return false
	}
	delete(b.categories, c.id)
	b.catOrder = dropName(b.catOrder, c.id)
	b.recycleBin[c.id] = c
	return true
}

// -------- save frames --------

// SetSaveFrame returns the existing save frame of that name, or
// constructs and registers a new one.
func (b *DataBlock) SetSaveFrame(name string) *SaveFrame {
	if s, ok := b.saveFrames[name]; ok {
		return s
	}
	return b.registerSaveFrame(NewSaveFrame(name))
}

// PutSaveFrame registers a pre-built save frame unless its id is taken,
// in which case the registered one wins.
func (b *DataBlock) PutSaveFrame(s *SaveFrame) *SaveFrame {
	if s == nil {
		return nil
	}
	if have, ok := b.saveFrames[s.id]; ok {
		return have
	}
	return b.registerSaveFrame(s)
}

func (b *DataBlock) registerSaveFrame(s *SaveFrame) *SaveFrame {
	s.parent = b
	b.saveFrames[s.id] = s
	b.frameOrder = append(b.frameOrder, s.id)
	return s
}

// SaveFrame returns the live save frame of that name, or nil.
func (b *DataBlock) SaveFrame(name string) *SaveFrame { return b.saveFrames[name] }

// SaveFrameIDs lists live save frame ids in insertion order.
func (b *DataBlock) SaveFrameIDs() []string { return slices.Clone(b.frameOrder) }

// SaveFrames lists live save frames in insertion order.
func (b *DataBlock) SaveFrames() []*SaveFrame {
	out := make([]*SaveFrame, 0, len(b.frameOrder))
	for _, id := range b.frameOrder {
		out = append(out, b.saveFrames[id])
	}
	return out
}

// RemoveSaveFrame moves the named save frame into the recycle bin.
func (b *DataBlock) RemoveSaveFrame(name string) bool {
	s, ok := b.saveFrames[name]
	if !ok {
		return false
	}
	return b.removeSaveFrame(s)
}

func (b *DataBlock) removeSaveFrame(s *SaveFrame) bool {
	if have, ok := b.saveFrames[s.id]; !ok || have != s {
		return false
	}
	delete(b.saveFrames, s.id)
	b.frameOrder = dropName(b.frameOrder, s.id)
	b.recycleBin[s.id] = s
	return true
}

// RemoveChild removes a child by name alone, probing categories first
// and then save frames. When the name is live in both stores only the
// category is removed, and the ambiguity is logged.
func (b *DataBlock) RemoveChild(name string) bool {
	asCat := stripUnderscore(name)
	_, isCat := b.categories[asCat]
	_, isFrame := b.saveFrames[name]
	if isCat && isFrame {
		b.logger().Warn("ambiguous child name, removing the category only",
			"datablock", b.id, "name", name)
	}
	switch {
	case isCat:
		return b.RemoveCategory(asCat)
	case isFrame:
		return b.RemoveSaveFrame(name)
	default:
		return false
	}
}

// RecycleBin exposes removed categories and save frames by name, for
// inspection only.
func (b *DataBlock) RecycleBin() map[string]any { return b.recycleBin }

// Remove moves the block from its File into the File's recycle bin.
func (b *DataBlock) Remove() bool {
	if b.parent == nil {
		return false
	}
	return b.parent.removeBlock(b)
}

func (b *DataBlock) logger() *slog.Logger {
	if b.parent != nil {
		return b.parent.log
	}
	return slog.Default()
}

// =========================
// File
// =========================

// File is the root of the ownership tree. Destroying a File releases the
// whole subtree; no other resources are held.
type File struct {
	path       string
	blocks     map[string]*DataBlock
	order      []string
	recycleBin map[string]*DataBlock
	log        *slog.Logger
}

// NewFile returns an empty File. path is a label only; nothing is read.
func NewFile(path string) *File {
	return &File{
		path:       path,
		blocks:     make(map[string]*DataBlock),
		recycleBin: make(map[string]*DataBlock),
		log:        slog.Default(),
	}
}

// Path is the source label the File was created with.
func (f *File) Path() string { return f.path }

// SetLogger routes the tree's diagnostics to l.
func (f *File) SetLogger(l *slog.Logger) {
	if l != nil {
		f.log = l
	}
}

// SetDataBlock returns the existing block of that id, or constructs and
// registers a new one.
func (f *File) SetDataBlock(id string) *DataBlock {
	if b, ok := f.blocks[id]; ok {
		return b
	}
	return f.registerBlock(NewDataBlock(id))
}

// PutDataBlock registers a pre-built block unless its id is taken, in
// which case the registered one wins.
func (f *File) PutDataBlock(b *DataBlock) *DataBlock {
	if b == nil {
		return nil
	}
	if have, ok := f.blocks[b.id]; ok {
		return have
	}
	return f.registerBlock(b)
}

func (f *File) registerBlock(b *DataBlock) *DataBlock {
	b.parent = f
	f.blocks[b.id] = b
	f.order = append(f.order, b.id)
	return b
}

// DataBlock returns the live block of that id, or nil.
func (f *File) DataBlock(id string) *DataBlock { return f.blocks[id] }

// DataBlockIDs lists live block ids in insertion order.
func (f *File) DataBlockIDs() []string { return slices.Clone(f.order) }

// DataBlocks lists live blocks in insertion order.
func (f *File) DataBlocks() []*DataBlock {
	out := make([]*DataBlock, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.blocks[id])
	}
	return out
}

// RemoveDataBlock moves the named block into the recycle bin.
func (f *File) RemoveDataBlock(id string) bool {
	b, ok := f.blocks[id]
	if !ok {
		return false
	}
	return f.removeBlock(b)
}

func (f *File) removeBlock(b *DataBlock) bool {
	if have, ok := f.blocks[b.id]; !ok || have != b {
		return false
	}
	delete(f.blocks, b.id)
	f.order = dropName(f.order, b.id)
	f.recycleBin[b.id] = b
	return true
}

// RecycleBin exposes removed blocks by id, for inspection only.
func (f *File) RecycleBin() map[string]*DataBlock { return f.recycleBin }

// ImportDataMap populates the tree from a nested mapping of the form
//
//	{ DATABLOCK_ID: { CATEGORY: { ITEM: VALUE } } }
//
// where VALUE is a scalar or a []any column. A branch that is not a
// mapping where one is required is logged and skipped; the rest of the
// import proceeds. Keys are walked in sorted order so repeated imports
// of the same map build identical trees.
func (f *File) ImportDataMap(m map[string]any) {
	if len(m) == 0 {
		f.log.Warn("cif import: no data supplied", "file", f.path)
		return
	}
	for _, blockID := range sortedKeys(m) {
		cats, ok := m[blockID].(map[string]any)
		if !ok {
			f.log.Warn("cif import: datablock branch is not a mapping, skipped",
				"file", f.path, "datablock", blockID)
			continue
		}
		block := f.SetDataBlock(blockID)
		for _, catName := range sortedKeys(cats) {
			items, ok := cats[catName].(map[string]any)
			if !ok {
				f.log.Warn("cif import: category branch is not a mapping, skipped",
					"file", f.path, "datablock", blockID, "category", catName)
				continue
			}
			cat := block.SetCategory(catName)
			for _, itemName := range sortedKeys(items) {
				cat.SetItem(itemName).SetValue(items[itemName], DefaultValueType, -1)
			}
		}
	}
}

// =========================
// Utilities
// =========================

func stripUnderscore(s string) string {
	for len(s) > 0 && s[0] == '_' {
		s = s[1:]
	}
	return s
}

func dropName(order []string, name string) []string {
	if i := slices.Index(order, name); i >= 0 {
		return slices.Delete(order, i, i+1)
	}
	return order
}

func renameInOrder(order []string, from, to string) {
	if i := slices.Index(order, from); i >= 0 {
		order[i] = to
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
