package queries_test

import (
	"testing"

	"scheduler/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
)

func TestNewListJobsQuery_Valid(t *testing.T) {
	query := queries.NewListJobsQuery(" report ")

	assert.NoError(t, query.Validate())
	assert.Equal(t, "report", query.Name())
}

func TestListJobsQuery_NotConstructedViaConstructor(t *testing.T) {
	var query queries.ListJobsQuery

	assert.ErrorIs(t, query.Validate(), queries.ErrListJobsQueryIsNotConstructed)
}
