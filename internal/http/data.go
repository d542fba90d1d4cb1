package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/selahapp/selah/internal/entities"
)

// CollectionDeleter wipes one collection for a user and reports how many
// rows were removed.
type CollectionDeleter interface {
	DeleteAllForUser(userID uint) (int64, error)
}

// AuditRecorder records audit events for sensitive actions.
type AuditRecorder interface {
	Record(event *entities.AuditEvent) error
}

// DataDeleters groups the per-collection deleters for bulk wipes.
type DataDeleters struct {
	Bookmarks  CollectionDeleter
	Notes      CollectionDeleter
	Highlights CollectionDeleter
	Topics     CollectionDeleter
	Progress   CollectionDeleter
	Plans      CollectionDeleter
}

// DataController handles bulk data deletion across the user's collections.
type DataController struct {
	collections map[string]CollectionDeleter
	audit       AuditRecorder
}

// NewDataController wires the per-collection deleters. Collection names
// appear verbatim in the response and the audit trail.
func NewDataController(deleters DataDeleters, audit AuditRecorder) *DataController {
	return &DataController{
		collections: map[string]CollectionDeleter{
			"bookmarks":  deleters.Bookmarks,
			"notes":      deleters.Notes,
			"highlights": deleters.Highlights,
			"topics":     deleters.Topics,
			"progress":   deleters.Progress,
			"plans":      deleters.Plans,
		},
		audit: audit,
	}
}

// collectionOrder fixes the response ordering; map iteration is random.
var collectionOrder = []string{"bookmarks", "notes", "highlights", "topics", "progress", "plans"}

// DeleteAll wipes every collection the user owns and reports per-collection
// counts. Each wipe is recorded in the audit log.
// DELETE /api/data/all
func (dc *DataController) DeleteAll(c *gin.Context) {
	userID := GetUserID(c)
	deleted := make(map[string]int64, len(dc.collections))

	for _, name := range collectionOrder {
		count, err := dc.wipe(c, userID, name, "data_delete_all")
		if err != nil {
			return
		}
		deleted[name] = count
	}

	c.JSON(http.StatusOK, gin.H{"message": "all data deleted", "deleted": deleted})
}

// DeleteCollection wipes a single collection named in the path.
// DELETE /api/data/:type
func (dc *DataController) DeleteCollection(c *gin.Context) {
	name := c.Param("type")
	if _, ok := dc.collections[name]; !ok {
		respondBadRequest(c, "unknown collection: "+name)
		return
	}

	count, err := dc.wipe(c, GetUserID(c), name, "data_delete_collection")
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": name + " deleted",
		"deleted": map[string]int64{name: count},
	})
}

// wipe clears one collection and records the audit event. Responses for
// failures are written here; callers return on error.
func (dc *DataController) wipe(c *gin.Context, userID uint, name, action string) (int64, error) {
	count, err := dc.collections[name].DeleteAllForUser(userID)
	if err != nil {
		respondInternalError(c, err, "delete "+name)
		return 0, err
	}

	if err := dc.audit.Record(&entities.AuditEvent{
		UserID:     userID,
		EventType:  entities.AuditEventDelete,
		Action:     action,
		EntityType: name,
		Count:      count,
		IPAddress:  c.ClientIP(),
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		respondInternalError(c, err, "audit delete "+name)
		return 0, err
	}

	return count, nil
}
