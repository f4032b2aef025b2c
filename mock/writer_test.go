package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/hdscrape"
	"github.com/fwojciec/hdscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ hdscrape.RowWriter = &mock.RowWriter{}
}

func TestRowWriter_WriteSections(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteSectionsFn", func(t *testing.T) {
		t.Parallel()

		var calledWith []hdscrape.Row
		w := &mock.RowWriter{
			WriteSectionsFn: func(_ context.Context, rows []hdscrape.Row) error {
				calledWith = rows
				return nil
			},
		}

		rows := []hdscrape.Row{{URL: "https://example.org/fever", SectionID: "causes"}}

		err := w.WriteSections(context.Background(), rows)

		require.NoError(t, err)
		assert.Equal(t, rows, calledWith)
	})
}
