package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"labmanager/internal/domain/user"
	"labmanager/internal/interfaces/http/handlers/testutil"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
)

func newExportEngine(handler *ExportHandler, as *user.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		testutil.SetAuthContext(c, as)
		c.Next()
	})
	r.GET("/export/:entity", handler.Export)
	r.GET("/export/:entity/:scopeId", handler.Export)
	return r
}

func sheetRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestExportHandler_ExportAll(t *testing.T) {
	registry, world := testRegistry(t)
	r := newExportEngine(NewExportHandler(registry, logger.NewNop()), adminUser())

	w := do(r, http.MethodGet, "/export/equipment", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, constants.ContentTypeSpreadsheet, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="equipment.xlsx"`, w.Header().Get("Content-Disposition"))

	rows := sheetRows(t, w.Body.Bytes(), "equipment")
	require.Len(t, rows, 3)
	assert.Equal(t, "Inventory number", rows[0][0])
	assert.Equal(t, world.EquipmentA.InventoryNum, rows[1][0])
	assert.Equal(t, world.EquipmentB.InventoryNum, rows[2][0])
}

func TestExportHandler_ExportByDefaultScope(t *testing.T) {
	registry, world := testRegistry(t)
	r := newExportEngine(NewExportHandler(registry, logger.NewNop()), adminUser())

	w := do(r, http.MethodGet, fmt.Sprintf("/export/equipment/%d", world.LabB.LabCode), nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := sheetRows(t, w.Body.Bytes(), "equipment")
	require.Len(t, rows, 2)
	assert.Equal(t, world.EquipmentB.InventoryNum, rows[1][0])
}

func TestExportHandler_ExportByExplicitScope(t *testing.T) {
	registry, world := testRegistry(t)
	r := newExportEngine(NewExportHandler(registry, logger.NewNop()), adminUser())

	w := do(r, http.MethodGet, fmt.Sprintf("/export/laboratory/%d?scope=faculty", world.FacultyA.FacultyID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := sheetRows(t, w.Body.Bytes(), "laboratory")
	require.Len(t, rows, 2)
	assert.Equal(t, world.LabA.LabName, rows[1][1])
}

func TestExportHandler_RestrictedToOwnLaboratory(t *testing.T) {
	registry, world := testRegistry(t)
	manager := &user.User{ID: 5, LabCode: &world.LabA.LabCode, Role: &user.Role{Name: constants.RoleLabManager}}
	r := newExportEngine(NewExportHandler(registry, logger.NewNop()), manager)

	w := do(r, http.MethodGet, "/export/equipment", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := sheetRows(t, w.Body.Bytes(), "equipment")
	require.Len(t, rows, 2)
	assert.Equal(t, world.EquipmentA.InventoryNum, rows[1][0])
}

func TestExportHandler_Errors(t *testing.T) {
	registry, _ := testRegistry(t)
	r := newExportEngine(NewExportHandler(registry, logger.NewNop()), adminUser())

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantType errors.ErrorType
	}{
		{"unknown entity", "/export/spaceship", http.StatusNotFound, errors.ErrorTypeNotFound},
		{"unknown scope", "/export/equipment/1?scope=planet", http.StatusBadRequest, errors.ErrorTypeInvalidQuery},
		{"malformed scope id", "/export/equipment/abc", http.StatusBadRequest, errors.ErrorTypeInvalidQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.wantCode, w.Code)
			var resp testutil.ErrorResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, string(tt.wantType), resp.Type)
		})
	}
}
