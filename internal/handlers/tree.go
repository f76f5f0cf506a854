package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vancomm/pcview/internal/config"
	"github.com/vancomm/pcview/internal/middleware"
	"github.com/vancomm/pcview/internal/pc"
	"github.com/vancomm/pcview/internal/repository"
	"github.com/vancomm/pcview/internal/solution"
	"github.com/vancomm/pcview/internal/viewer"
)

// MaxTreeSize bounds an uploaded tree_data.js file.
const MaxTreeSize = 64 << 20

type TreeStore interface {
	CreateTree(ctx context.Context, params repository.CreateTreeParams) (*repository.Tree, error)
	FetchTree(ctx context.Context, treeId int64) (*repository.Tree, error)
	ListTrees(ctx context.Context, filter repository.TreeFilter) ([]repository.TreeInfo, error)
	DeleteTree(ctx context.Context, treeId int64, userId int64) (bool, error)
}

type TreeHandler struct {
	logger   *slog.Logger
	trees    TreeStore
	ws       *config.WebSocket
	basePath string
	workers  int
}

func NewTreeHandler(
	logger *slog.Logger,
	trees TreeStore,
	ws *config.WebSocket,
	basePath string,
	workers int,
) *TreeHandler {
	return &TreeHandler{
		logger:   logger,
		trees:    trees,
		ws:       ws,
		basePath: basePath,
		workers:  workers,
	}
}

var (
	ErrTreeNameTaken = errors.New("tree name taken")
	ErrNotOwner      = errors.New("tree belongs to another user")
)

func (h *TreeHandler) treeURL(id int64) string {
	return h.basePath + "/trees/" + strconv.FormatInt(id, 10)
}

func (h *TreeHandler) viewer(id int64) *viewer.Viewer {
	base := h.treeURL(id)
	return viewer.New(func(path solution.Path) string {
		return base + "?path=" + url.QueryEscape(path.String())
	})
}

func (h *TreeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	dto, err := ParseUploadTreeDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}

	file, err := solution.ParseFile(http.MaxBytesReader(w, r.Body, MaxTreeSize))
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		sendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if _, err := file.Tree(); err != nil {
		sendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}

	tree, err := h.trees.CreateTree(r.Context(), repository.CreateTreeParams{
		UserId:   claims.UserId,
		Name:     dto.Name,
		InitHash: int64(file.InitHash),
		Data:     file.Data,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendErrorOrLog(w, h.logger, http.StatusConflict, ErrTreeNameTaken)
		return
	}
	if err != nil {
		internalError(w, h.logger, "unable to insert tree", err)
		return
	}

	h.logger.Info("tree uploaded",
		slog.Int64("treeId", tree.TreeId),
		slog.String("name", tree.Name),
		slog.String("username", claims.Username),
	)
	w.Header().Set("Location", h.treeURL(tree.TreeId))
	sendJSONOrLog(w, h.logger, http.StatusCreated, NewTreeInfoDTO(repository.TreeInfo{
		TreeId:    tree.TreeId,
		Name:      tree.Name,
		InitHash:  tree.InitHash,
		Username:  claims.Username,
		CreatedAt: tree.CreatedAt,
	}))
}

func (h *TreeHandler) List(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseListTreesDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	infos, err := h.trees.ListTrees(r.Context(), dto.Filter())
	if err != nil {
		internalError(w, h.logger, "unable to list trees", err)
		return
	}
	sendJSONOrLog(w, h.logger, http.StatusOK, NewTreeInfoDTOs(infos))
}

// load fetches and decodes the tree named by the request path. On failure
// the response has been written.
func (h *TreeHandler) load(w http.ResponseWriter, r *http.Request) (*repository.Tree, *solution.Tree, bool) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}
	row, err := h.trees.FetchTree(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		internalError(w, h.logger, "unable to fetch tree from db", err)
		return nil, nil, false
	}
	root, err := solution.Decode(row.Data)
	if err != nil {
		internalError(w, h.logger, "db returned an invalid tree", err)
		return nil, nil, false
	}
	return row, &solution.Tree{InitHash: pc.Hash(row.InitHash), Root: root}, true
}

// display renders the node at the requested path, answering with the
// matching status when it cannot.
func (h *TreeHandler) display(w http.ResponseWriter, r *http.Request, row *repository.Tree, tree *solution.Tree) (*viewer.View, bool) {
	path, err := ParseViewTreeDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}
	view, err := h.viewer(row.TreeId).Display(tree, path)
	if err != nil {
		h.sendDisplayError(w, err)
		return nil, false
	}
	return view, true
}

func (h *TreeHandler) sendDisplayError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, solution.ErrInvalidPath):
		sendErrorOrLog(w, h.logger, http.StatusNotFound, err)
	case errors.Is(err, pc.ErrNoPlacement):
		h.logger.Error("unable to reconstruct placement", slog.Any("error", err))
		sendErrorOrLog(w, h.logger, http.StatusUnprocessableEntity, err)
	default:
		internalError(w, h.logger, "unable to display node", err)
	}
}

func (h *TreeHandler) View(w http.ResponseWriter, r *http.Request) {
	row, tree, ok := h.load(w, r)
	if !ok {
		return
	}
	view, ok := h.display(w, r, row, tree)
	if !ok {
		return
	}
	fragment, err := view.Fragment()
	if err != nil {
		internalError(w, h.logger, "unable to render fragment", err)
		return
	}

	var buf bytes.Buffer
	err = viewer.RenderPage(&buf, viewer.PageData{
		Title:      row.Name,
		Path:       view.Path,
		Fragment:   fragment,
		Crumbs:     h.viewer(row.TreeId).Crumbs(view.Path),
		SocketPath: h.treeURL(row.TreeId) + "/connect",
	})
	if err != nil {
		internalError(w, h.logger, "unable to render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *TreeHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	row, tree, ok := h.load(w, r)
	if !ok {
		return
	}
	view, ok := h.display(w, r, row, tree)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := view.WriteFragment(&buf); err != nil {
		internalError(w, h.logger, "unable to render fragment", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *TreeHandler) Verify(w http.ResponseWriter, r *http.Request) {
	_, tree, ok := h.load(w, r)
	if !ok {
		return
	}
	report, err := viewer.Verify(r.Context(), tree, h.workers)
	if errors.Is(err, pc.ErrNoPlacement) {
		h.logger.Error("tree failed verification", slog.Any("error", err))
		sendErrorOrLog(w, h.logger, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		internalError(w, h.logger, "unable to verify tree", err)
		return
	}
	sendJSONOrLog(w, h.logger, http.StatusOK, report)
}

// Raw serves the tree back in the solver's tree_data.js format.
func (h *TreeHandler) Raw(w http.ResponseWriter, r *http.Request) {
	row, _, ok := h.load(w, r)
	if !ok {
		return
	}
	file := solution.File{InitHash: pc.Hash(row.InitHash), Data: row.Data}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "tree_data.js"))
	if _, err := file.WriteTo(w); err != nil {
		h.logger.Warn("unable to send tree data", slog.Any("error", err))
	}
}

func (h *TreeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	row, err := h.trees.FetchTree(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, h.logger, "unable to fetch tree from db", err)
		return
	}
	if row.UserId != claims.UserId {
		sendErrorOrLog(w, h.logger, http.StatusForbidden, ErrNotOwner)
		return
	}

	deleted, err := h.trees.DeleteTree(r.Context(), id, claims.UserId)
	if err != nil {
		internalError(w, h.logger, "unable to delete tree", err)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
