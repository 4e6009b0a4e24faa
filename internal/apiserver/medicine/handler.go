// Package medicine 药品领域 HTTP 处理器：捐赠、浏览、按地址领取、申领、删除、自动补全
package medicine

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"medshare/internal/shared/cache"
	"medshare/internal/shared/model"
	"medshare/internal/shared/storage"
)

// 返回给客户端的消息
const (
	msgDonated       = "Medicine donated successfully"
	msgDeleted       = "Medicine deleted successfully"
	msgNotFound      = "Medicine not found"
	msgDonateFailed  = "Failed to donate medicine"
	msgFetchFailed   = "Failed to fetch donated medicines"
	msgDeleteFailed  = "Failed to delete medicine"
	msgRequestFailed = "Failed to request medicine"
	msgInternal      = "Internal server error"
)

// Handler 药品 HTTP 处理器
type Handler struct {
	store storage.MedicineStore
	cache cache.SuggestionCache
}

// NewHandler 创建药品处理器，suggestions 为 nil 时不缓存自动补全结果
func NewHandler(store storage.MedicineStore, suggestions cache.SuggestionCache) *Handler {
	if suggestions == nil {
		suggestions = cache.NewNoOpCache()
	}
	return &Handler{store: store, cache: suggestions}
}

// RegisterRoutes 注册药品相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/donate", h.Donate)
	mux.HandleFunc("GET /api/login/home", h.Home)
	mux.HandleFunc("GET /api/collect-medicine/{address}", h.Collect)
	mux.HandleFunc("DELETE /api/delete/{medicinename}", h.Delete)
	mux.HandleFunc("GET /api/request/{medicinename}", h.Request)
	mux.HandleFunc("GET /api/autocomplete/{query}", h.Autocomplete)
}

// Donate 捐赠药品，六个字段均为必填
func (h *Handler) Donate(w http.ResponseWriter, r *http.Request) {
	var req model.DonateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := req.Validate()
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreateMedicine(r.Context(), m); err != nil {
		log.Printf("[medicine.donate] CreateMedicine error: %v", err)
		writeError(w, http.StatusInternalServerError, msgDonateFailed)
		return
	}
	h.invalidateSuggestions(r.Context())

	writeMessage(w, http.StatusCreated, msgDonated)
}

// Home 列出全部药品
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListMedicines(r.Context())
	if err != nil {
		log.Printf("[medicine.home] ListMedicines error: %v", err)
		writeError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeList(w, list)
}

// Collect 按地址精确匹配列出药品
func (h *Handler) Collect(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	list, err := h.store.ListMedicinesByAddress(r.Context(), address)
	if err != nil {
		log.Printf("[medicine.collect] ListMedicinesByAddress error: %v", err)
		writeError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeList(w, list)
}

// Delete 删除一条同名药品（最早插入的一条）
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("medicinename")
	if err := h.store.DeleteMedicineByName(r.Context(), name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		log.Printf("[medicine.delete] DeleteMedicineByName error: %v", err)
		writeError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}
	h.invalidateSuggestions(r.Context())

	writeMessage(w, http.StatusOK, msgDeleted)
}

// Request 按名称申领药品，返回最早插入的匹配项
func (h *Handler) Request(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("medicinename")
	m, err := h.store.GetMedicineByName(r.Context(), name)
	if err != nil {
		log.Printf("[medicine.request] GetMedicineByName error: %v", err)
		writeError(w, http.StatusInternalServerError, msgRequestFailed)
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Autocomplete 名称子串匹配（大小写不敏感），只返回名称
func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")

	cached, gen, hit, cacheErr := h.cache.GetSuggestions(r.Context(), query)
	if cacheErr != nil {
		log.Printf("[medicine.autocomplete] cache get error: %v", cacheErr)
	} else if hit {
		writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: nonNil(cached)})
		return
	}

	names, err := h.store.SearchMedicineNames(r.Context(), query)
	if err != nil {
		log.Printf("[medicine.autocomplete] SearchMedicineNames error: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	// 读缓存失败时代号未知，不回写
	if cacheErr == nil {
		if err := h.cache.SetSuggestions(r.Context(), gen, query, names); err != nil {
			log.Printf("[medicine.autocomplete] cache set error: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: nonNil(names)})
}

func (h *Handler) invalidateSuggestions(ctx context.Context) {
	if err := h.cache.InvalidateSuggestions(ctx); err != nil {
		log.Printf("[medicine] cache invalidate error: %v", err)
	}
}

// ============================================================================
// 工具函数
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeList 空结果编码为 []
func writeList(w http.ResponseWriter, list []*model.Medicine) {
	if list == nil {
		list = []*model.Medicine{}
	}
	writeJSON(w, http.StatusOK, list)
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
