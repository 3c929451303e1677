package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labmanager/internal/interfaces/http/handlers/testutil"
	"labmanager/internal/shared/constants"
)

func TestMetaHandler_Get(t *testing.T) {
	registry, _ := testRegistry(t)
	handler := NewMetaHandler(registry)

	c, w := testutil.NewTestContext(http.MethodGet, "/meta/laboratory", nil)
	testutil.SetURLParam(c, "entity", "laboratory")
	testutil.SetLanguage(c, "fr-FR,fr;q=0.9")

	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp MetaResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	assert.Equal(t, "laboratory", resp.Entity)
	assert.Equal(t, "Laboratoires", resp.Label)
	assert.Equal(t, []string{"lab_code"}, resp.Key)
	assert.Equal(t, []string{"faculty_id", "domain_id", "dept_id"}, resp.Filters)
	assert.Equal(t, constants.ScopeFaculty, resp.DefaultScope)
	assert.Contains(t, resp.Scopes, constants.ScopeLaboratory)

	require.Len(t, resp.Columns, 5)
	assert.Equal(t, MetaColumn{Field: "lab_name", Label: "Nom du laboratoire", Sortable: true, Searchable: true}, resp.Columns[1])
	assert.Equal(t, MetaColumn{Field: "faculty.faculty_name", Label: "Faculté"}, resp.Columns[2])
}

func TestMetaHandler_GetEnglishFallback(t *testing.T) {
	registry, _ := testRegistry(t)
	handler := NewMetaHandler(registry)

	c, w := testutil.NewTestContext(http.MethodGet, "/meta/equipment", nil)
	testutil.SetURLParam(c, "entity", "equipment")

	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp MetaResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "Inventory number", resp.Columns[0].Label)
	assert.True(t, resp.Columns[0].Sortable)
}

func TestMetaHandler_UnknownEntity(t *testing.T) {
	registry, _ := testRegistry(t)
	handler := NewMetaHandler(registry)

	c, w := testutil.NewTestContext(http.MethodGet, "/meta/spaceship", nil)
	testutil.SetURLParam(c, "entity", "spaceship")
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetaHandler_List(t *testing.T) {
	registry, _ := testRegistry(t)
	handler := NewMetaHandler(registry)

	c, w := testutil.NewTestContext(http.MethodGet, "/meta", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"entities":["laboratory","equipment","publication","assignment"]}`, w.Body.String())
}
