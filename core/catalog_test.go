package core

import (
	"context"
	"testing"

	"github.com/huangsam/gi/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSplitCatalog(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "mixed line endings", body: "a\r\nb\nc\rd", want: []string{"a", "b", "c", "d"}},
		{name: "comma separated lines", body: "1c,1c-bitrix\nactionscript,ada", want: []string{"1c", "1c-bitrix", "actionscript", "ada"}},
		{name: "duplicates kept in order", body: "go\nnode\ngo", want: []string{"go", "node", "go"}},
		{name: "trailing newline dropped", body: "go\nnode\n", want: []string{"go", "node"}},
		{name: "empty segments dropped", body: "go,,node\r\n\r\n", want: []string{"go", "node"}},
		{name: "empty body", body: "", want: []string{}},
		{name: "only separators", body: "\n,\r\n", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCatalog(tt.body))
		})
	}
}

func TestGetTemplateNamesMalformed(t *testing.T) {
	store := newMemStore(t)
	fetcher := &contract.MockFetcher{}
	fetcher.On("Fetch", mock.Anything, "list").Return([]byte("\n\n"), nil).Once()

	r := NewResolver(store, fetcher, WithClock(fixedClock), WithNotifier(quietNotifier()))
	names, err := r.GetTemplateNames(context.Background(), day)

	assert.ErrorIs(t, err, contract.ErrFetchFailed)
	assert.ErrorIs(t, err, contract.ErrMalformedResponse)
	assert.Nil(t, names)

	_, _, err = store.Get("list")
	assert.ErrorIs(t, err, contract.ErrCacheMiss, "A malformed catalog is never cached")
}

func TestGetTemplateNamesReturnsCopies(t *testing.T) {
	store := newMemStore(t)
	fetcher := &contract.MockFetcher{}
	fetcher.On("Fetch", mock.Anything, "list").Return([]byte("go,node"), nil).Once()

	r := NewResolver(store, fetcher, WithClock(fixedClock))
	first, err := r.GetTemplateNames(context.Background(), day)
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := r.GetTemplateNames(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "node"}, second)
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
}
