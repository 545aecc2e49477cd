package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"FoodAppML/internal/model"
)

// ItemsService задаёт интерфейс бизнес-логики позиций меню для HTTP-слоя
type ItemsService interface {
	Create(ctx context.Context, name string, price float64, image *string, demand, stock int) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, id, demand, stock int, price float64) error
}

// SuggestService задаёт интерфейс конвейера подбора для HTTP-слоя
type SuggestService interface {
	Suggest(ctx context.Context, query string) (*model.Suggestions, error)
}

// Predictor задаёт интерфейс модели предсказания цены
type Predictor interface {
	Predict(demand, stock float64) float64
}

// Handler содержит зависимости и реализует HTTP-эндпоинты приложения
type Handler struct {
	items     ItemsService
	suggest   SuggestService
	predictor Predictor
	uploadDir string
}

// NewHandler создаёт новый HTTP Handler
// uploadDir — каталог для сохранения загруженных изображений
func NewHandler(items ItemsService, suggest SuggestService, predictor Predictor, uploadDir string) *Handler {
	return &Handler{items: items, suggest: suggest, predictor: predictor, uploadDir: uploadDir}
}

// RegisterRoutes регистрирует маршруты API
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Эндпоинты для проверки здоровья и готовности сервиса
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")
	r.HandleFunc("/readyz", h.Readyz).Methods("GET")
	r.HandleFunc("/", h.Hello).Methods("GET")
	r.HandleFunc("/suggest", h.Suggest).Methods("GET")
	r.HandleFunc("/predict", h.Predict).Methods("POST")
	r.HandleFunc("/items", h.CreateItem).Methods("POST")
	r.HandleFunc("/items", h.ListItems).Methods("GET")
	r.HandleFunc("/items/{id:[0-9]+}", h.UpdateItem).Methods("PUT")
	r.HandleFunc("/images/{filename}", h.ServeImage).Methods("GET")
}

// ErrorResponse модель ошибки API
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Hello обрабатывает GET / и возвращает сообщение живости сервиса
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": "Hello, World!"})
}

// Suggest обрабатывает GET /suggest
// 1. Читает параметр query; пустой или отсутствующий дает пустые списки без ошибки
// 2. Вызывает конвейер подбора
// 3. При ошибке чтения каталога или истории возвращает 500 с {"error": ...} без частичного результата
// 4. При успехе возвращает JSON {ml_based: {name_matches, tag_matches}}
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	result, err := h.suggest.Suggest(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]interface{}{"ml_based": result})
}

// Predict обрабатывает POST /predict
// 1. Декодирует тело запроса с полями demand и stock; отсутствующие поля дают 0
// 2. Возвращает точечное предсказание цены обученной модели
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Demand float64 `json:"demand"`
		Stock  float64 `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	predicted := h.predictor.Predict(req.Demand, req.Stock)
	writeJSON(w, map[string]float64{"predicted_price": predicted})
}

// CreateItem обрабатывает POST /items (multipart form)
// 1. Парсит поля name, price, demand, stock; некорректные числовые значения дают 0
// 2. Сохраняет загруженное изображение (если есть) в uploadDir с безопасным именем
// 3. Вызывает сервис Create и возвращает JSON созданной позиции
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	name := r.FormValue("name")
	price := parseFloat(r.FormValue("price"))
	demand := parseInt(r.FormValue("demand"))
	stock := parseInt(r.FormValue("stock"))

	var image *string
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		filename := sanitizeFilename(header.Filename)
		if filename == "" {
			writeError(w, http.StatusBadRequest, "invalid image filename")
			return
		}
		if err := h.saveUpload(file, filename); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		image = &filename
	}

	item, err := h.items.Create(r.Context(), name, price, image, demand, stock)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, item)
}

// ListItems обрабатывает GET /items
// Возвращает массив всех строк хранилища без обогащения рейтингами и тегами
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, items)
}

// UpdateItem обрабатывает PUT /items/{id}
// 1. Декодирует тело с полями demand, stock, price; отсутствующие поля дают 0
// 2. Вызывает сервис Update; несуществующий id неотличим от успеха
// 3. Возвращает сообщение-подтверждение
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Demand int     `json:"demand"`
		Stock  int     `json:"stock"`
		Price  float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.items.Update(r.Context(), id, req.Demand, req.Stock, req.Price); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]string{"message": "Item updated successfully"})
}

// ServeImage обрабатывает GET /images/{filename}
// Отдает ранее загруженный файл из uploadDir; имя проходит ту же санитизацию, что и при загрузке
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	filename := sanitizeFilename(mux.Vars(r)["filename"])
	if filename == "" {
		writeError(w, http.StatusBadRequest, "invalid filename")
		return
	}
	path := filepath.Join(h.uploadDir, filename)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	http.ServeFile(w, r, path)
}

// Healthz возвращает статус работы сервиса
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// Readyz возвращает готовность сервиса
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}

// saveUpload записывает содержимое загруженного файла в uploadDir под именем filename
func (h *Handler) saveUpload(src io.Reader, filename string) error {
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// sanitizeFilename приводит имя загружаемого файла к безопасному виду:
// отбрасывает путь, заменяет недопустимые символы на '_', отвергает скрытые и пустые имена
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	cleaned := strings.Trim(b.String(), ".")
	return cleaned
}

// parseInt разбирает числовое поле формы; пустое или некорректное значение дает 0
func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// parseFloat разбирает дробное поле формы; пустое или некорректное значение дает 0
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
