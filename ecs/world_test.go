package ecs

import (
	"testing"

	"github.com/milk9111/shelfsort/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
		wantAlive    int
	}{
		{"single", 1, 0, 0},
		{"three_destroy_middle", 3, 1, 2},
		{"none_destroyed", 2, -1, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
			}
			if got := len(Entities(w)); got != c.wantAlive {
				t.Fatalf("expected %d live entities, got %d", c.wantAlive, got)
			}
		})
	}
}

func TestRecycledIDGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	first := CreateEntity(w)
	if !first.Valid() {
		t.Fatalf("created entity should be valid")
	}
	DestroyEntity(w, first)

	second := CreateEntity(w)
	if second.id() != first.id() {
		t.Fatalf("expected id %d to be recycled, got %d", first.id(), second.id())
	}
	if second.generation() == first.generation() {
		t.Fatalf("recycled entity must carry a new generation")
	}
	if IsAlive(w, first) {
		t.Fatalf("stale handle should not be alive")
	}

	k := component.NewComponentKind[int]()
	if err := Add(w, first, k, intPtr(1)); err == nil {
		t.Fatalf("adding to a stale handle should fail")
	}
}

func TestComponentTable(t *testing.T) {
	w := NewWorld()
	ki := component.NewComponentKind[int]()
	ks := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_int",
			setup: func() error { return Add(w, e1, ki, intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ki)
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name:  "replace_int",
			setup: func() error { return Add(w, e1, ki, intPtr(11)) },
			check: func(t *testing.T) {
				v, _ := Get(w, e1, ki)
				if *v != 11 {
					t.Fatalf("expected replaced value 11, got %d", *v)
				}
			},
		},
		{
			name: "add_string_to_both",
			setup: func() error {
				a, b := "a", "b"
				if err := Add(w, e1, ks, &a); err != nil {
					return err
				}
				return Add(w, e2, ks, &b)
			},
			check: func(t *testing.T) {
				if !Has(w, e1, ks) || !Has(w, e2, ks) {
					t.Fatalf("expected both entities to have string component")
				}
			},
		},
		{
			name:  "nil_rejected",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				if err := Add[int](w, e2, ki, nil); err != component.ErrNilComponent {
					t.Fatalf("expected ErrNilComponent, got %v", err)
				}
			},
		},
		{
			name:  "remove_string",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				if !Remove(w, e1, ks) {
					t.Fatalf("remove should report true")
				}
				if Has(w, e1, ks) {
					t.Fatalf("component still present after remove")
				}
				if !Has(w, e2, ks) {
					t.Fatalf("remove touched the wrong entity")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestDestroyRemovesComponents(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	e := CreateEntity(w)
	if err := Add(w, e, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, e)

	reused := CreateEntity(w)
	if Has(w, reused, k) {
		t.Fatalf("recycled entity inherited a component")
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e1, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e3, k, intPtr(3)); err != nil {
		t.Fatal(err)
	}

	sum := 0
	var ents []Entity
	ForEach(w, k, func(e Entity, v *int) {
		ents = append(ents, e)
		sum += *v
	})
	set := toSet(ents)
	if _, ok := set[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
	if len(set) != 2 || sum != 4 {
		t.Fatalf("expected e1 and e3 with sum 4, got %v sum=%d", ents, sum)
	}
}

func TestForEachMutatesInPlace(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	e := CreateEntity(w)
	if err := Add(w, e, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}

	ForEach(w, k, func(_ Entity, v *int) { *v = 42 })

	v, _ := Get(w, e, k)
	if *v != 42 {
		t.Fatalf("expected pointer mutation to stick, got %d", *v)
	}
}

func TestMultiKindIteration(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "for_each3_intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				for _, k := range []component.ComponentKind[int]{ka, kb, kc} {
					if err := Add(w, e2, k, intPtr(2)); err != nil {
						t.Fatal(err)
					}
				}
				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "for_each4_ignores_dead",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				kinds := []component.ComponentKind[int]{
					component.NewComponentKind[int](),
					component.NewComponentKind[int](),
					component.NewComponentKind[int](),
					component.NewComponentKind[int](),
				}
				for i, k := range kinds {
					if err := Add(w, e, k, intPtr(i)); err != nil {
						t.Fatal(err)
					}
				}
				DestroyEntity(w, e)

				var res []Entity
				ForEach4(w, kinds[0], kinds[1], kinds[2], kinds[3], func(e Entity, _ *int, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[string]()
				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if res := w.Query(ka, kb); res != nil {
					t.Fatalf("expected nil when a store is missing, got %v", res)
				}
			},
		},
		{
			name: "first_picks_lowest_id",
			run: func(t *testing.T) {
				w := NewWorld()
				k := component.NewComponentKind[int]()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				if err := Add(w, e2, k, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e1, k, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				got, ok := w.First(k)
				if !ok || got != e1 {
					t.Fatalf("expected e1, got %v ok=%v", got, ok)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}
