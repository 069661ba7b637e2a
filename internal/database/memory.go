package database

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Memory implements Store entirely in process with the same observable
// semantics as the mongo implementation: store-generated ObjectIDs, equality
// filters with dotted paths, $set/$setOnInsert/$push/$pull updates including
// the positional operator. Package tests run services and handlers against it
// without a database.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]bson.M)}
}

// normalize round-trips a document through bson so stored values use the
// driver's types (bson.DateTime, bson.A, nested bson.M) regardless of what
// the caller passed in.
func normalize(doc interface{}) (bson.M, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Memory) Insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	m, err := normalize(doc)
	if err != nil {
		return "", err
	}
	id, ok := m["_id"].(bson.ObjectID)
	if !ok {
		id = bson.NewObjectID()
		m["_id"] = id
	}

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], m)
	s.mu.Unlock()

	return id.Hex(), nil
}

func (s *Memory) Find(ctx context.Context, collection string, filter bson.M) ([]bson.Raw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []bson.Raw
	for _, doc := range s.collections[collection] {
		if !matchFilter(doc, filter) {
			continue
		}
		raw, err := bson.Marshal(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, bson.Raw(raw))
	}
	return out, nil
}

func (s *Memory) FindSorted(ctx context.Context, collection string, filter bson.M, sortKey string, ascending bool) ([]bson.Raw, error) {
	s.mu.RLock()
	var matched []bson.M
	for _, doc := range s.collections[collection] {
		if matchFilter(doc, filter) {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		c := compareValues(lookupFirst(matched[i], sortKey), lookupFirst(matched[j], sortKey))
		if ascending {
			return c < 0
		}
		return c > 0
	})

	out := make([]bson.Raw, 0, len(matched))
	for _, doc := range matched {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, bson.Raw(raw))
	}
	return out, nil
}

func (s *Memory) FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if matchFilter(doc, filter) {
			raw, err := bson.Marshal(doc)
			if err != nil {
				return nil, err
			}
			return bson.Raw(raw), nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) UpdateOne(ctx context.Context, collection string, filter bson.M, update bson.M, upsert bool) (UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if !matchFilter(doc, filter) {
			continue
		}
		updated, err := applyUpdate(doc, update, filter, false)
		if err != nil {
			return UpdateResult{}, err
		}
		norm, err := normalize(updated)
		if err != nil {
			return UpdateResult{}, err
		}
		res := UpdateResult{MatchedCount: 1}
		if !reflect.DeepEqual(doc, norm) {
			res.ModifiedCount = 1
		}
		docs[i] = norm
		return res, nil
	}

	if !upsert {
		return UpdateResult{}, nil
	}

	// Upsert miss: seed the new document from the filter's plain equality
	// fields, the way the server does, then apply the update including
	// $setOnInsert.
	seed := bson.M{}
	for k, v := range filter {
		if strings.Contains(k, ".") || strings.HasPrefix(k, "$") {
			continue
		}
		if _, isDoc := v.(bson.M); isDoc {
			continue
		}
		seed[k] = v
	}
	applied, err := applyUpdate(seed, update, filter, true)
	if err != nil {
		return UpdateResult{}, err
	}
	norm, err := normalize(applied)
	if err != nil {
		return UpdateResult{}, err
	}
	id := bson.NewObjectID()
	norm["_id"] = id
	s.collections[collection] = append(s.collections[collection], norm)

	return UpdateResult{UpsertedID: id.Hex()}, nil
}

func (s *Memory) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if matchFilter(doc, filter) {
			s.collections[collection] = append(docs[:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *Memory) Ping(ctx context.Context) error { return nil }

func (s *Memory) Close(ctx context.Context) error { return nil }

// applyUpdate runs the supported update operators against a copy of doc.
// filter is needed to resolve the positional $ segment; insert marks an
// upsert-created document so $setOnInsert applies.
func applyUpdate(doc bson.M, update bson.M, filter bson.M, insert bool) (bson.M, error) {
	out, err := normalize(doc)
	if err != nil {
		return nil, err
	}
	for op, rawFields := range update {
		fields, ok := rawFields.(bson.M)
		if !ok {
			return nil, fmt.Errorf("malformed %s document", op)
		}
		switch op {
		case "$set":
			for path, val := range fields {
				if err := setPath(out, path, val, filter); err != nil {
					return nil, err
				}
			}
		case "$setOnInsert":
			if !insert {
				continue
			}
			for path, val := range fields {
				if err := setPath(out, path, val, filter); err != nil {
					return nil, err
				}
			}
		case "$push":
			for path, val := range fields {
				if err := pushPath(out, path, val, filter); err != nil {
					return nil, err
				}
			}
		case "$pull":
			for path, cond := range fields {
				condDoc, ok := cond.(bson.M)
				if !ok {
					return nil, fmt.Errorf("$pull condition for %s must be a document", path)
				}
				if err := pullPath(out, path, condDoc); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("unsupported update operator %s", op)
		}
	}
	return out, nil
}

func setPath(doc bson.M, path string, val interface{}, filter bson.M) error {
	return walkPath(doc, path, filter, func(parent bson.M, key string) {
		parent[key] = val
	}, func(arr bson.A, pos int) {
		arr[pos] = val
	})
}

func pushPath(doc bson.M, path string, val interface{}, filter bson.M) error {
	return walkPath(doc, path, filter, func(parent bson.M, key string) {
		existing, _ := parent[key].(bson.A)
		parent[key] = append(existing, val)
	}, func(arr bson.A, pos int) {
		nested, _ := arr[pos].(bson.A)
		arr[pos] = append(nested, val)
	})
}

// walkPath traverses a dotted path, resolving the positional $ segment
// against the filter, and invokes the leaf callback on the final container.
func walkPath(doc bson.M, path string, filter bson.M, onDoc func(bson.M, string), onArr func(bson.A, int)) error {
	segs := strings.Split(path, ".")
	var cur interface{} = doc
	for i, seg := range segs {
		last := i == len(segs)-1
		switch node := cur.(type) {
		case bson.M:
			if last {
				onDoc(node, seg)
				return nil
			}
			next, ok := node[seg]
			if !ok || next == nil {
				child := bson.M{}
				node[seg] = child
				cur = child
				continue
			}
			cur = next
		case bson.A:
			if seg != "$" {
				return fmt.Errorf("unsupported array segment %q in path %s", seg, path)
			}
			pos := positionalIndex(node, strings.Join(segs[:i], "."), filter)
			if pos < 0 {
				return fmt.Errorf("positional operator found no match for path %s", path)
			}
			if last {
				onArr(node, pos)
				return nil
			}
			cur = node[pos]
		default:
			return fmt.Errorf("cannot traverse %q in path %s", seg, path)
		}
	}
	return nil
}

// positionalIndex finds the array element selected by the filter condition on
// arrayPath (the first "<arrayPath>.<field>": value equality in the filter).
func positionalIndex(arr bson.A, arrayPath string, filter bson.M) int {
	prefix := arrayPath + "."
	for k, want := range filter {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		field := strings.TrimPrefix(k, prefix)
		for i, elem := range arr {
			doc, ok := elem.(bson.M)
			if !ok {
				continue
			}
			if equalValues(doc[field], want) {
				return i
			}
		}
		return -1
	}
	return -1
}

func pullPath(doc bson.M, path string, cond bson.M) error {
	return walkPath(doc, path, nil, func(parent bson.M, key string) {
		arr, ok := parent[key].(bson.A)
		if !ok {
			return
		}
		kept := bson.A{}
		for _, elem := range arr {
			elemDoc, ok := elem.(bson.M)
			if ok && matchFilter(elemDoc, cond) {
				continue
			}
			kept = append(kept, elem)
		}
		parent[key] = kept
	}, func(arr bson.A, pos int) {})
}

// matchFilter reports whether doc satisfies every equality condition in
// filter. Dotted paths traverse nested documents; a path through an array
// matches when any element does.
func matchFilter(doc bson.M, filter bson.M) bool {
	for k, want := range filter {
		found := false
		for _, got := range lookupAll(doc, k) {
			if equalValues(got, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func lookupAll(doc bson.M, path string) []interface{} {
	nodes := []interface{}{doc}
	for _, seg := range strings.Split(path, ".") {
		var next []interface{}
		for _, n := range nodes {
			switch node := n.(type) {
			case bson.M:
				if v, ok := node[seg]; ok {
					next = append(next, v)
				}
			case bson.A:
				for _, elem := range node {
					if m, ok := elem.(bson.M); ok {
						if v, ok := m[seg]; ok {
							next = append(next, v)
						}
					}
				}
			}
		}
		nodes = next
	}
	// A leaf that is an array also matches by element.
	out := nodes
	for _, n := range nodes {
		if arr, ok := n.(bson.A); ok {
			out = append(out, arr...)
		}
	}
	return out
}

func lookupFirst(doc bson.M, path string) interface{} {
	vals := lookupAll(doc, path)
	if len(vals) == 0 {
		return nil
	}
	return vals[0]
}

func equalValues(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if t, ok := b.(time.Time); ok {
		b = bson.NewDateTimeFromTime(t)
	}
	if t, ok := a.(time.Time); ok {
		a = bson.NewDateTimeFromTime(t)
	}
	if na, aok := numeric(a); aok {
		if nb, bok := numeric(b); bok {
			return na == nb
		}
	}
	return reflect.DeepEqual(a, b)
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case bson.DateTime:
		return float64(n), true
	}
	return 0, false
}

func compareValues(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if na, aok := numeric(a); aok {
		if nb, bok := numeric(b); bok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			default:
				return 0
			}
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb)
		}
	}
	if oa, ok := a.(bson.ObjectID); ok {
		if ob, ok := b.(bson.ObjectID); ok {
			return bytes.Compare(oa[:], ob[:])
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
