package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	"github.com/samber/lo"

	"github.com/vancomm/pcview/internal/repository"
	"github.com/vancomm/pcview/internal/solution"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type UploadTreeDTO struct {
	Name string `schema:"name,required"`
}

func ParseUploadTreeDTO(src url.Values) (UploadTreeDTO, error) {
	var dto UploadTreeDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type ListTreesDTO struct {
	Username *string `schema:"username"`
	Name     *string `schema:"name"`
}

func ParseListTreesDTO(src url.Values) (ListTreesDTO, error) {
	var dto ListTreesDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto ListTreesDTO) Filter() repository.TreeFilter {
	return repository.TreeFilter(dto)
}

type ViewTreeDTO struct {
	Path string `schema:"path"`
}

func ParseViewTreeDTO(src url.Values) (solution.Path, error) {
	var dto ViewTreeDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return nil, err
	}
	return solution.ParsePath(dto.Path)
}

type TreeInfoDTO struct {
	TreeId    string `json:"tree_id"`
	Name      string `json:"name"`
	InitHash  int64  `json:"init_hash"`
	Username  string `json:"username,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func NewTreeInfoDTO(info repository.TreeInfo) TreeInfoDTO {
	return TreeInfoDTO{
		TreeId:    strconv.FormatInt(info.TreeId, 10),
		Name:      info.Name,
		InitHash:  info.InitHash,
		Username:  info.Username,
		CreatedAt: unixMilli(info.CreatedAt.Time),
	}
}

func NewTreeInfoDTOs(infos []repository.TreeInfo) []TreeInfoDTO {
	return lo.Map(infos, func(info repository.TreeInfo, _ int) TreeInfoDTO {
		return NewTreeInfoDTO(info)
	})
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// SocketMessage is the reply to every path sent over a viewer websocket.
type SocketMessage struct {
	Path  string `json:"path"`
	HTML  string `json:"html,omitempty"`
	Error string `json:"error,omitempty"`
}
