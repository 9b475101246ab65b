package dsl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	N int
}

// fixedStep increments the counter and always returns the same action.
type fixedStep struct {
	action   domain.Action
	declared []domain.Action
}

func (s fixedStep) Prepare(state counter) int { return state.N }

func (s fixedStep) Execute(ctx context.Context, n int) int { return n + 1 }

func (s fixedStep) Finalize(state *counter, in int, out int) domain.Action {
	state.N = out
	return s.action
}

func (s fixedStep) Actions() []domain.Action { return s.declared }

func add(b *dsl.Builder[counter], id string, action domain.Action, declared ...domain.Action) *dsl.NodeBuilder[counter] {
	return b.Add(dsl.Wrap[counter, int, int](id, fixedStep{action: action, declared: declared}))
}

func TestBuilder_SimpleFlow(t *testing.T) {
	b := dsl.New[counter]()

	add(b, "menu", "pick").
		On("pick", "work").
		On("again", "menu").
		Terminal("quit")

	add(b, "work", domain.ActionDefault).
		Default("menu")

	g, err := b.Start("menu").Build()
	require.NoError(t, err)

	assert.Equal(t, "menu", g.Entry())
	assert.Equal(t, []string{"menu", "work"}, g.NodeIDs())

	n, ok := g.Node("work")
	require.True(t, ok)
	assert.Equal(t, "work", n.ID())

	_, ok = g.Node("missing")
	assert.False(t, ok)
}

func TestGraph_Resolve(t *testing.T) {
	b := dsl.New[counter]()
	add(b, "menu", "pick").
		On("pick", "work").
		Terminal("quit")
	add(b, "work", domain.ActionDefault).
		On("retry", "work").
		Default("menu")

	g, err := b.Start("menu").Build()
	require.NoError(t, err)

	tests := []struct {
		name     string
		from     string
		action   domain.Action
		next     string
		terminal bool
		wantErr  bool
	}{
		{"Explicit Edge", "menu", "pick", "work", false, false},
		{"Terminal Action", "menu", "quit", "", true, false},
		{"Unresolved Action", "menu", "bogus", "", false, true},
		{"Explicit Over Default", "work", "retry", "work", false, false},
		{"Default Action", "work", domain.ActionDefault, "menu", false, false},
		{"Fallback To Default", "work", "anything", "menu", false, false},
		{"Unknown Node", "ghost", "pick", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, terminal, err := g.Resolve(tt.from, tt.action)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnresolvedAction)

				var te *domain.TransitionError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, tt.from, te.NodeID)
				assert.Equal(t, tt.action, te.Action)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, next)
			assert.Equal(t, tt.terminal, terminal)
		})
	}
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *dsl.Builder[counter]
		wantMsg string
	}{
		{
			name: "No Entry",
			build: func() *dsl.Builder[counter] {
				b := dsl.New[counter]()
				add(b, "a", "x").Terminal("x")
				return b
			},
			wantMsg: "no entry node",
		},
		{
			name: "Unknown Entry",
			build: func() *dsl.Builder[counter] {
				b := dsl.New[counter]()
				add(b, "a", "x").Terminal("x")
				return b.Start("zzz")
			},
			wantMsg: "entry node is not registered",
		},
		{
			name: "Duplicate Node",
			build: func() *dsl.Builder[counter] {
				b := dsl.New[counter]()
				add(b, "a", "x").Terminal("x")
				add(b, "a", "x").Terminal("x")
				return b.Start("a")
			},
			wantMsg: "registered more than once",
		},
		{
			name: "Dangling Edge",
			build: func() *dsl.Builder[counter] {
				b := dsl.New[counter]()
				add(b, "a", "x").On("x", "nowhere")
				return b.Start("a")
			},
			wantMsg: "targets unknown node 'nowhere'",
		},
		{
			name: "Dangling Default",
			build: func() *dsl.Builder[counter] {
				b := dsl.New[counter]()
				add(b, "a", "x").Default("nowhere")
				return b.Start("a")
			},
			wantMsg: "default edge targets unknown node",
		},
		{
			name: "Sink Node",
			build: func() *dsl.Builder[counter] {
				b := dsl.New[counter]()
				add(b, "a", "x").On("x", "b")
				add(b, "b", "y")
				return b.Start("a")
			},
			wantMsg: "node 'b': has no outgoing edge",
		},
		{
			name: "Undeclared Action Edge",
			build: func() *dsl.Builder[counter] {
				b := dsl.New[counter]()
				add(b, "a", "x", "x", "y").On("x", "a")
				return b.Start("a")
			},
			wantMsg: "declared action 'y' has no edge",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.build().Build()
			require.Error(t, err)
			assert.Nil(t, g)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var be *dsl.BuildError
			assert.True(t, errors.As(err, &be), "errors should be *dsl.BuildError")
		})
	}
}

func TestBuilder_DeclaredActionsWithDefault(t *testing.T) {
	b := dsl.New[counter]()
	add(b, "a", "x", "x", "y", "z").
		On("x", "a").
		Default("a")

	_, err := b.Start("a").Build()
	assert.NoError(t, err, "a default edge covers every declared action")
}

func TestGraph_Transitions(t *testing.T) {
	b := dsl.New[counter]()
	add(b, "menu", "pick").
		On("pick", "work").
		Terminal("quit")
	add(b, "work", domain.ActionDefault).
		Default("menu")

	g, err := b.Start("menu").Build()
	require.NoError(t, err)

	assert.Equal(t, []domain.Transition{
		{FromNodeID: "menu", ToNodeID: "work", Action: "pick"},
		{FromNodeID: "menu", Action: "quit", Terminal: true},
		{FromNodeID: "work", ToNodeID: "menu", Action: domain.ActionDefault},
	}, g.Transitions())
}

func TestWrap_Lifecycle(t *testing.T) {
	n := dsl.Wrap[counter, int, int]("inc", fixedStep{action: "next"})
	state := &counter{N: 41}

	action := n.Activate(context.Background(), state)

	assert.Equal(t, domain.Action("next"), action)
	assert.Equal(t, 42, state.N, "Finalize should write the Execute result back")
}
