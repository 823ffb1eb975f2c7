package tree

import "fmt"

// FromFlat builds a tree from flat records in any order. The one record
// without a parent identifier becomes the root; the rest are inserted
// breadth-first along their parent links, keeping input order among
// siblings. Any nested ChildrenField values are ignored.
//
// Returns ErrInvalidInput when there is no root record or more than one,
// and ErrNotFound when some records cannot be reached from the root.
func FromFlat(records []Record, cfg Config) (*Tree, error) {
	t, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return t, nil
	}

	var root Record
	byParent := make(map[any][]Record)
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("%w: record %d is empty", ErrInvalidInput, i)
		}
		parentID := rec[t.cfg.ParentIDField]
		if parentID == nil {
			if root != nil {
				return nil, fmt.Errorf("%w: records %v and %v both lack a %q field",
					ErrInvalidInput, root[t.cfg.IDField], rec[t.cfg.IDField], t.cfg.ParentIDField)
			}
			root = rec
			continue
		}
		if !validID(parentID) {
			return nil, fmt.Errorf("%w: record %d has parent identifier %v (%T)",
				ErrInvalidInput, i, parentID, parentID)
		}
		key := normalizeID(parentID)
		byParent[key] = append(byParent[key], rec)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no record lacks a %q field, cannot pick a root",
			ErrInvalidInput, t.cfg.ParentIDField)
	}

	queue := []Record{root}
	for len(queue) > 0 {
		rec := queue[0]
		queue = queue[1:]

		n, err := t.Insert(rec)
		if err != nil {
			return nil, err
		}
		key := normalizeID(n.id)
		queue = append(queue, byParent[key]...)
		delete(byParent, key)
	}

	if t.size < len(records) {
		return nil, fmt.Errorf("%w: %d records do not resolve to the root",
			ErrNotFound, len(records)-t.size)
	}
	return t, nil
}
