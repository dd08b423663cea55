package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/rumahkos/kos-bff/internal/domain"
	"github.com/rumahkos/kos-bff/internal/tracing"
)

// KosClient is the typed client for the external kos REST API. Every request
// carries the fixed MakerID tenant header, and the caller's bearer token on
// authenticated routes.
type KosClient struct {
	BaseURL string
	MakerID string
	http    *Client
}

func NewKosClient(baseURL, makerID string) *KosClient {
	return &KosClient{
		BaseURL: baseURL,
		MakerID: makerID,
		http:    NewClient(DefaultClientConfig()),
	}
}

func (c *KosClient) newRequest(ctx context.Context, method, path, token string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("MakerID", c.MakerID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// doJSON executes a request with an optional JSON payload and decodes the
// response body. Empty bodies decode to nil.
func (c *KosClient) doJSON(ctx context.Context, method, path, token string, payload any) (any, error) {
	ctx, span := tracing.StartSpan(ctx, "kosapi "+method)
	defer span.End()

	var body io.Reader
	contentType := ""
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, token, body, contentType)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return decoded, nil
}

// unwrap peels the {data: ...} envelope when present.
func unwrap(v any) any {
	if m, ok := v.(map[string]any); ok {
		if d, ok := m["data"]; ok && d != nil {
			return d
		}
	}
	return v
}

func asList(v any) []any {
	switch t := unwrap(v).(type) {
	case []any:
		return t
	default:
		return nil
	}
}

func asObject(v any) map[string]any {
	m, _ := unwrap(v).(map[string]any)
	return m
}

// --- auth ---

// Register creates an account. The success message comes from the upstream
// body when it has one.
func (c *KosClient) Register(ctx context.Context, form domain.RegisterForm) (string, error) {
	decoded, err := c.doJSON(ctx, http.MethodPost, "/register", "", form)
	if err != nil {
		return "", err
	}
	if m, ok := decoded.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok && msg != "" {
			return msg, nil
		}
	}
	return "Berhasil mendaftar! Silakan login.", nil
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *KosClient) Login(ctx context.Context, form domain.LoginForm) (string, domain.Profile, error) {
	decoded, err := c.doJSON(ctx, http.MethodPost, "/login", "", form)
	if err != nil {
		return "", domain.Profile{}, err
	}

	m, _ := decoded.(map[string]any)
	token := findToken(m)
	if token == "" {
		return "", domain.Profile{}, &StatusError{StatusCode: http.StatusBadGateway, Message: "login response missing token"}
	}

	userRaw, _ := findUser(m).(map[string]any)
	return token, domain.NormalizeProfile(userRaw), nil
}

func findToken(m map[string]any) string {
	if m == nil {
		return ""
	}
	for _, key := range []string{"token", "access_token"} {
		if t, ok := m[key].(string); ok && t != "" {
			return t
		}
	}
	if data, ok := m["data"].(map[string]any); ok {
		return findToken(data)
	}
	return ""
}

func findUser(m map[string]any) any {
	if m == nil {
		return nil
	}
	if u, ok := m["user"]; ok {
		return u
	}
	if data, ok := m["data"].(map[string]any); ok {
		return findUser(data)
	}
	return nil
}

// --- owner kos ---

func (c *KosClient) ListOwnerKos(ctx context.Context, token string) ([]domain.Kos, error) {
	decoded, err := c.doJSON(ctx, http.MethodGet, "/admin/show_kos", token, nil)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeKosList(asList(decoded)), nil
}

func (c *KosClient) GetOwnerKos(ctx context.Context, token string, id int) (domain.Kos, error) {
	decoded, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/show_kos/%d", id), token, nil)
	if err != nil {
		return domain.Kos{}, err
	}
	return domain.NormalizeKos(asObject(decoded)), nil
}

func (c *KosClient) CreateKos(ctx context.Context, token string, ownerID int, form domain.KosForm) error {
	payload := map[string]any{
		"user_id":         ownerID,
		"name":            form.Name,
		"address":         form.Address,
		"price_per_month": form.PricePerMonth,
		"gender":          form.Gender,
	}
	_, err := c.doJSON(ctx, http.MethodPost, "/admin/store_kos", token, payload)
	return err
}

func (c *KosClient) UpdateKos(ctx context.Context, token string, id, ownerID int, form domain.KosForm) error {
	payload := map[string]any{
		"user_id":         ownerID,
		"name":            form.Name,
		"address":         form.Address,
		"price_per_month": form.PricePerMonth,
		"gender":          form.Gender,
	}
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/update_kos/%d", id), token, payload)
	return err
}

func (c *KosClient) DeleteKos(ctx context.Context, token string, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/delete_kos/%d", id), token, nil)
	return err
}

// --- facilities ---

func (c *KosClient) ListFacilities(ctx context.Context, token string, kosID int) ([]domain.Facility, error) {
	decoded, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/show_facility/%d", kosID), token, nil)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeFacilityList(asList(decoded)), nil
}

func (c *KosClient) CreateFacility(ctx context.Context, token string, kosID int, name string) error {
	payload := map[string]any{"facility_name": name}
	_, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/store_facility/%d", kosID), token, payload)
	return err
}

func (c *KosClient) GetFacility(ctx context.Context, token string, id int) (domain.Facility, error) {
	decoded, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/detail_facility/%d", id), token, nil)
	if err != nil {
		return domain.Facility{}, err
	}
	return domain.NormalizeFacility(asObject(decoded)), nil
}

func (c *KosClient) UpdateFacility(ctx context.Context, token string, id int, name string) error {
	payload := map[string]any{"facility_name": name}
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/update_facility/%d", id), token, payload)
	return err
}

func (c *KosClient) DeleteFacility(ctx context.Context, token string, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/delete_facility/%d", id), token, nil)
	return err
}

// --- images ---

func (c *KosClient) ListImages(ctx context.Context, token string, kosID int) ([]domain.Image, error) {
	decoded, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/show_image/%d", kosID), token, nil)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeImageList(asList(decoded)), nil
}

func (c *KosClient) GetImage(ctx context.Context, token string, id int) (domain.Image, error) {
	decoded, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/detail_image/%d", id), token, nil)
	if err != nil {
		return domain.Image{}, err
	}
	return domain.NormalizeImage(asObject(decoded)), nil
}

// UploadImage posts a new kos photo as multipart/form-data with the file in
// the "file" field, the way the upstream expects uploads.
func (c *KosClient) UploadImage(ctx context.Context, token string, kosID int, filename string, file io.Reader) error {
	return c.sendImage(ctx, http.MethodPost, fmt.Sprintf("/admin/store_image/%d", kosID), token, filename, file)
}

// UpdateImage replaces an existing photo, multipart like UploadImage.
func (c *KosClient) UpdateImage(ctx context.Context, token string, id int, filename string, file io.Reader) error {
	return c.sendImage(ctx, http.MethodPut, fmt.Sprintf("/admin/update_image/%d", id), token, filename, file)
}

func (c *KosClient) sendImage(ctx context.Context, method, path, token, filename string, file io.Reader) error {
	ctx, span := tracing.StartSpan(ctx, "kosapi upload")
	defer span.End()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, token, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *KosClient) DeleteImage(ctx context.Context, token string, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/delete_image/%d", id), token, nil)
	return err
}

// --- bookings ---

// OwnerBookings lists bookings across the owner's kos, optionally filtered
// by status and by date (the upstream spells the date filter "tgl").
func (c *KosClient) OwnerBookings(ctx context.Context, token, status, date string) ([]domain.Booking, error) {
	q := url.Values{}
	if status != "" && status != "all" {
		q.Set("status", status)
	}
	if date != "" {
		q.Set("tgl", date)
	}
	path := "/admin/show_bookings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	decoded, err := c.doJSON(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeBookingList(asList(decoded)), nil
}

func (c *KosClient) UpdateBookingStatus(ctx context.Context, token string, id int, status domain.BookingStatus) error {
	payload := map[string]any{"status": string(status)}
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/update_status_booking/%d", id), token, payload)
	return err
}

func (c *KosClient) SocietyBookings(ctx context.Context, token, status string) ([]domain.Booking, error) {
	path := "/society/show_bookings"
	if status != "" && status != "all" {
		path += "?status=" + url.QueryEscape(status)
	}
	decoded, err := c.doJSON(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeBookingList(asList(decoded)), nil
}

func (c *KosClient) CreateBooking(ctx context.Context, token string, kosID int, startDate, endDate string) error {
	payload := map[string]any{
		"kos_id":     kosID,
		"start_date": startDate,
		"end_date":   endDate,
	}
	_, err := c.doJSON(ctx, http.MethodPost, "/society/booking", token, payload)
	return err
}

// Receipt fetches the booking used for the printable receipt.
func (c *KosClient) Receipt(ctx context.Context, token string, bookingID int) (domain.Booking, error) {
	decoded, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/society/cetak_nota/%d", bookingID), token, nil)
	if err != nil {
		return domain.Booking{}, err
	}
	return domain.NormalizeBooking(asObject(decoded)), nil
}

// --- society kos ---

func (c *KosClient) SearchKos(ctx context.Context, token, search string) ([]domain.Kos, error) {
	path := "/society/show_kos"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	decoded, err := c.doJSON(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeKosList(asList(decoded)), nil
}

func (c *KosClient) KosDetail(ctx context.Context, token string, id int) (domain.Kos, error) {
	decoded, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/society/detail_kos/%d", id), token, nil)
	if err != nil {
		return domain.Kos{}, err
	}
	return domain.NormalizeKos(asObject(decoded)), nil
}

// --- reviews ---

// KosReviews fetches the flat review list of one kos. The reviews ride
// inside the kos detail object, whose user_id identifies the kos owner;
// reply threading keys on that id, not on whoever is asking.
func (c *KosClient) KosReviews(ctx context.Context, token string, kosID int) (int, []domain.Review, error) {
	decoded, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/show_reviews/%d", kosID), token, nil)
	if err != nil {
		return 0, nil, err
	}
	obj := asObject(decoded)
	if obj == nil {
		return 0, []domain.Review{}, nil
	}
	items, _ := obj["reviews"].([]any)
	return domain.NormalizeKos(obj).OwnerID, domain.NormalizeReviewList(items), nil
}

func (c *KosClient) CreateReview(ctx context.Context, token string, kosID int, comment string, rating int) error {
	payload := map[string]any{"comment": comment}
	if rating > 0 {
		payload["rating"] = rating
	}
	_, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/admin/store_reviews/%d", kosID), token, payload)
	return err
}

func (c *KosClient) DeleteReview(ctx context.Context, token string, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/society/delete_review/%d", id), token, nil)
	return err
}

// --- profile ---

// UpdateProfile updates name/email/phone on the role-specific endpoint and
// returns the refreshed profile when the upstream echoes one.
func (c *KosClient) UpdateProfile(ctx context.Context, token, role string, form domain.ProfileForm) (domain.Profile, error) {
	path := "/society/update_profile"
	if role == domain.RoleOwner {
		path = "/admin/update_profile"
	}
	decoded, err := c.doJSON(ctx, http.MethodPut, path, token, form)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.NormalizeProfile(asObject(decoded)), nil
}
