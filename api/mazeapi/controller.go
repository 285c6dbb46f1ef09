package mazeapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/beka-birhanu/vinom-mazegen/api/identity"
	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Defaults are used when a create request leaves out a dimension.
type Defaults struct {
	Cols int
	Rows int
}

// MazeController exposes maze sessions to authenticated users.
type MazeController struct {
	sessions i.MazeSessionManager
	defaults Defaults
}

// NewMazeController initializes a MazeController.
func NewMazeController(sm i.MazeSessionManager, defaults Defaults) (*MazeController, error) {
	if sm == nil {
		return nil, errors.New("maze controller needs a session manager")
	}
	if defaults.Cols <= 0 || defaults.Rows <= 0 {
		return nil, maze.ErrInvalidDimensions
	}
	return &MazeController{
		sessions: sm,
		defaults: defaults,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.GET("", mc.listSessions)
		mazes.GET("/:ID", mc.snapshot)
		mazes.GET("/:ID/ascii", mc.ascii)
		mazes.POST("/:ID/step", mc.step)
		mazes.POST("/:ID/run", mc.run)
		mazes.POST("/:ID/reset", mc.reset)
		mazes.DELETE("/:ID", mc.delete)
	}

	records := route.Group("/records")
	{
		records.GET("", mc.listRecords)
		records.GET("/:ID", mc.record)
	}
}

func (mc *MazeController) create(ctx *gin.Context) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request CreateRequest
	if !bindOptionalJSON(ctx, &request) {
		return
	}

	cols, rows := mc.defaults.Cols, mc.defaults.Rows
	if request.Cols != nil {
		cols = *request.Cols
	}
	if request.Rows != nil {
		rows = *request.Rows
	}

	info, err := mc.sessions.Create(ctx, owner, cols, rows, request.Seed)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newSessionResponse(info))
}

func (mc *MazeController) listSessions(ctx *gin.Context) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	infos := mc.sessions.Sessions(ctx, owner)
	response := make([]*SessionResponse, 0, len(infos))
	for _, info := range infos {
		response = append(response, newSessionResponse(info))
	}
	ctx.JSON(http.StatusOK, response)
}

func (mc *MazeController) snapshot(ctx *gin.Context) {
	owner, id, ok := ownerAndID(ctx)
	if !ok {
		return
	}

	snap, err := mc.sessions.Snapshot(ctx, owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (mc *MazeController) ascii(ctx *gin.Context) {
	owner, id, ok := ownerAndID(ctx)
	if !ok {
		return
	}

	text, err := mc.sessions.Render(ctx, owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.String(http.StatusOK, text)
}

func (mc *MazeController) step(ctx *gin.Context) {
	owner, id, ok := ownerAndID(ctx)
	if !ok {
		return
	}

	request := StepRequest{Count: 1}
	if !bindOptionalJSON(ctx, &request) {
		return
	}

	report, err := mc.sessions.Step(ctx, owner, id, request.Count)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newStepResponse(report))
}

func (mc *MazeController) run(ctx *gin.Context) {
	owner, id, ok := ownerAndID(ctx)
	if !ok {
		return
	}

	report, err := mc.sessions.Run(ctx, owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newStepResponse(report))
}

func (mc *MazeController) reset(ctx *gin.Context) {
	owner, id, ok := ownerAndID(ctx)
	if !ok {
		return
	}

	var request ResetRequest
	if !bindOptionalJSON(ctx, &request) {
		return
	}

	info, err := mc.sessions.Reset(ctx, owner, id, request.Seed)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(info))
}

func (mc *MazeController) delete(ctx *gin.Context) {
	owner, id, ok := ownerAndID(ctx)
	if !ok {
		return
	}

	if err := mc.sessions.Delete(ctx, owner, id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (mc *MazeController) record(ctx *gin.Context) {
	owner, id, ok := ownerAndID(ctx)
	if !ok {
		return
	}

	record, err := mc.sessions.Record(ctx, owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newRecordResponse(record))
}

func (mc *MazeController) listRecords(ctx *gin.Context) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	records, err := mc.sessions.Records(ctx, owner)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := make([]*RecordResponse, 0, len(records))
	for _, r := range records {
		response = append(response, newRecordResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

// ownerAndID reads the caller and the :ID path parameter, answering the request itself on failure.
func ownerAndID(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, uuid.Nil, false
	}
	return owner, id, true
}

// bindOptionalJSON binds the body into obj; an empty body leaves obj as is.
func bindOptionalJSON(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, service.ErrDimensionTooLarge),
		errors.Is(err, service.ErrInvalidStepCount):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, dmn.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
