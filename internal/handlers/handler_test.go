package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"clinica-salud-api/internal/db"
	"clinica-salud-api/internal/handlers"
	"clinica-salud-api/internal/models"
	"clinica-salud-api/internal/store"
	"clinica-salud-api/internal/utils"
)

// setup connects to the test database and mounts the handlers on a bare
// router. The auth and role gates have their own tests; here the handlers
// are exercised directly.
func setup(t *testing.T) (*store.Store, http.Handler) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	secret := os.Getenv("JWT_SECRET")
	if dbURL == "" || secret == "" {
		t.Skip("DATABASE_URL or JWT_SECRET not set")
	}

	conn, err := db.Connect(dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if migration, err := os.ReadFile("../../db/migrations/001_init.sql"); err == nil {
		if _, err := conn.Exec(string(migration)); err != nil {
			t.Fatalf("migration: %v", err)
		}
	}

	st := store.New(conn)
	h := handlers.New(st, secret)

	r := chi.NewRouter()
	r.Post("/api/auth/register", h.Auth.Register)
	r.Post("/api/auth/login", h.Auth.Login)
	r.Get("/api/auth/users", h.Auth.ListUsers)
	r.Get("/api/auth/users/{id}", h.Auth.GetUser)
	r.Put("/api/auth/users/{id}", h.Auth.UpdateUser)
	r.Delete("/api/auth/users/{id}", h.Auth.DeleteUser)

	r.Post("/api/pacientes", h.Patients.Create)
	r.Get("/api/pacientes", h.Patients.List)
	r.Get("/api/pacientes/{id}", h.Patients.Get)
	r.Put("/api/pacientes/{id}", h.Patients.Update)
	r.Delete("/api/pacientes/{id}", h.Patients.Delete)

	r.Post("/api/servicios", h.Services.Create)
	r.Get("/api/servicios", h.Services.List)
	r.Get("/api/servicios/{id}", h.Services.Get)
	r.Put("/api/servicios/{id}", h.Services.Update)
	r.Delete("/api/servicios/{id}", h.Services.Delete)

	r.Post("/api/citas", h.Appointments.Create)
	r.Get("/api/citas", h.Appointments.List)
	r.Get("/api/citas/{id}", h.Appointments.Get)
	r.Patch("/api/citas/{id}", h.Appointments.Update)
	r.Put("/api/citas/{id}", h.Appointments.Update)
	r.Delete("/api/citas/{id}", h.Appointments.Delete)

	return st, r
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func uniqueEmail() string {
	return fmt.Sprintf("test-%s@clinica.test", uuid.NewString()[:8])
}

// uniqueName returns a name pair no other test run will collide with.
func uniqueName() (string, string) {
	tag := uuid.NewString()[:8]
	return "Paciente" + tag, "Prueba" + tag
}

func createService(t *testing.T, st *store.Store, durationMin int) *models.Service {
	t.Helper()
	svc := &models.Service{
		Name:     fmt.Sprintf("servicio-%s", uuid.NewString()[:8]),
		Duration: durationMin,
		Price:    150,
	}
	if err := st.CreateService(context.Background(), svc); err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

type citaResp struct {
	Mensaje string                   `json:"mensaje"`
	Cita    models.AppointmentDetail `json:"cita"`
}

// ----- auth -----

func TestRegisterAndLogin(t *testing.T) {
	st, r := setup(t)

	email := uniqueEmail()
	rec := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"email": email, "password": "testpass123", "role": "doctor",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	var reg struct {
		Token   string      `json:"token"`
		Usuario models.User `json:"usuario"`
	}
	decode(t, rec, &reg)
	if reg.Token == "" {
		t.Error("empty token")
	}
	if reg.Usuario.Role != "doctor" {
		t.Errorf("role = %q, want doctor", reg.Usuario.Role)
	}

	// stored password is hashed, never the plaintext
	u, err := st.UserByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("user by email: %v", err)
	}
	if u.Password == "testpass123" {
		t.Fatal("plaintext password stored")
	}
	if !utils.CheckPassword(u.Password, "testpass123") {
		t.Error("stored hash does not match the password")
	}

	rec = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": "testpass123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	var login struct {
		Token string `json:"token"`
	}
	decode(t, rec, &login)
	if login.Token == "" {
		t.Error("login returned empty token")
	}

	rec = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": "not-the-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	_, r := setup(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"password": "testpass123"}},
		{"missing password", map[string]string{"email": uniqueEmail()}},
		{"empty body", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doJSON(t, r, http.MethodPost, "/api/auth/register", tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, r := setup(t)

	email := uniqueEmail()
	body := map[string]string{"email": email, "password": "testpass123"}

	if rec := doJSON(t, r, http.MethodPost, "/api/auth/register", body); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodPost, "/api/auth/register", body); rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	_, r := setup(t)

	rec := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "nobody@clinica.test", "password": "testpass123",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUpdateUserSparse(t *testing.T) {
	_, r := setup(t)

	email := uniqueEmail()
	rec := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"email": email, "password": "testpass123", "role": "secretaria",
	})
	var reg struct {
		Usuario models.User `json:"usuario"`
	}
	decode(t, rec, &reg)

	rec = doJSON(t, r, http.MethodPut, "/api/auth/users/"+reg.Usuario.ID, map[string]string{
		"firstName": "Ana",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	var upd struct {
		Usuario models.User `json:"usuario"`
	}
	decode(t, rec, &upd)

	if upd.Usuario.FirstName == nil || *upd.Usuario.FirstName != "Ana" {
		t.Error("firstName not updated")
	}
	if upd.Usuario.Email != email {
		t.Errorf("email changed to %q", upd.Usuario.Email)
	}
	if upd.Usuario.Role != "secretaria" {
		t.Errorf("role changed to %q", upd.Usuario.Role)
	}
}

func TestUserNotFound(t *testing.T) {
	_, r := setup(t)

	id := uuid.NewString()
	if rec := doJSON(t, r, http.MethodGet, "/api/auth/users/"+id, nil); rec.Code != http.StatusNotFound {
		t.Errorf("get status = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodPut, "/api/auth/users/"+id, map[string]string{"firstName": "X"}); rec.Code != http.StatusNotFound {
		t.Errorf("update status = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodDelete, "/api/auth/users/"+id, nil); rec.Code != http.StatusNotFound {
		t.Errorf("delete status = %d, want 404", rec.Code)
	}
}

// ----- citas -----

func TestCreateCitaNewPatient(t *testing.T) {
	st, r := setup(t)
	svc := createService(t, st, 30)
	nombre, apellido := uniqueName()

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	rec := doJSON(t, r, http.MethodPost, "/api/citas", map[string]string{
		"nombre":    nombre,
		"apellido":  apellido,
		"serviceId": svc.ID,
		"startTime": start.Format(time.RFC3339),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp citaResp
	decode(t, rec, &resp)

	if resp.Cita.Status != "pending" {
		t.Errorf("status = %q, want pending", resp.Cita.Status)
	}
	if resp.Cita.Patient.PrimerNombre != nombre || resp.Cita.Patient.Apellido != apellido {
		t.Errorf("joined patient = %q %q", resp.Cita.Patient.PrimerNombre, resp.Cita.Patient.Apellido)
	}
	if resp.Cita.Service.ID != svc.ID {
		t.Errorf("joined service = %q", resp.Cita.Service.ID)
	}
	if !resp.Cita.EndTime.Equal(start.Add(30 * time.Minute)) {
		t.Errorf("endTime = %v, want %v", resp.Cita.EndTime, start.Add(30*time.Minute))
	}

	// exactly one patient was created implicitly
	patients, err := st.ListPatients(context.Background(), nombre)
	if err != nil {
		t.Fatalf("list patients: %v", err)
	}
	if len(patients) != 1 {
		t.Fatalf("patients with name %q = %d, want 1", nombre, len(patients))
	}
}

func TestCreateCitaExistingPatient(t *testing.T) {
	st, r := setup(t)
	svc := createService(t, st, 30)
	nombre, apellido := uniqueName()

	existing := &models.Patient{PrimerNombre: nombre, Apellido: apellido}
	if err := st.CreatePatient(context.Background(), existing); err != nil {
		t.Fatalf("create patient: %v", err)
	}

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	rec := doJSON(t, r, http.MethodPost, "/api/citas", map[string]string{
		"nombre": nombre, "apellido": apellido,
		"serviceId": svc.ID, "startTime": start.Format(time.RFC3339),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp citaResp
	decode(t, rec, &resp)
	if resp.Cita.PatientID != existing.ID {
		t.Errorf("patientId = %q, want existing %q", resp.Cita.PatientID, existing.ID)
	}

	patients, _ := st.ListPatients(context.Background(), nombre)
	if len(patients) != 1 {
		t.Fatalf("patients = %d, want 1 (no duplicate created)", len(patients))
	}
}

func TestCreateCitaValidation(t *testing.T) {
	_, r := setup(t)

	base := map[string]string{
		"nombre": "Ana", "apellido": "Prueba",
		"serviceId": uuid.NewString(), "startTime": time.Now().Format(time.RFC3339),
	}
	for _, field := range []string{"nombre", "apellido", "serviceId", "startTime"} {
		t.Run("missing "+field, func(t *testing.T) {
			body := map[string]string{}
			for k, v := range base {
				if k != field {
					body[k] = v
				}
			}
			if rec := doJSON(t, r, http.MethodPost, "/api/citas", body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// A booking against an unknown service fails with 404, but the implicitly
// created patient stays around. Documented behavior, not a bug.
func TestCreateCitaUnknownService(t *testing.T) {
	st, r := setup(t)
	nombre, apellido := uniqueName()

	rec := doJSON(t, r, http.MethodPost, "/api/citas", map[string]string{
		"nombre": nombre, "apellido": apellido,
		"serviceId": uuid.NewString(),
		"startTime": time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	patients, _ := st.ListPatients(context.Background(), nombre)
	if len(patients) != 1 {
		t.Errorf("patients = %d, want 1 (side-effect creation preserved)", len(patients))
	}
}

func TestListCitasOrdered(t *testing.T) {
	st, r := setup(t)
	svc := createService(t, st, 30)
	nombre, apellido := uniqueName()

	later := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	earlier := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	// insert out of order
	for _, start := range []time.Time{later, earlier} {
		rec := doJSON(t, r, http.MethodPost, "/api/citas", map[string]string{
			"nombre": nombre, "apellido": apellido,
			"serviceId": svc.ID, "startTime": start.Format(time.RFC3339),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}
	}

	rec := doJSON(t, r, http.MethodGet, "/api/citas", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var resp struct {
		Citas []models.AppointmentDetail `json:"citas"`
	}
	decode(t, rec, &resp)

	for i := 1; i < len(resp.Citas); i++ {
		if resp.Citas[i].StartTime.Before(resp.Citas[i-1].StartTime) {
			t.Fatalf("citas out of order at %d: %v after %v", i, resp.Citas[i].StartTime, resp.Citas[i-1].StartTime)
		}
	}
}

func TestUpdateCitaStatusOnly(t *testing.T) {
	st, r := setup(t)
	svc := createService(t, st, 45)
	nombre, apellido := uniqueName()

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	rec := doJSON(t, r, http.MethodPost, "/api/citas", map[string]string{
		"nombre": nombre, "apellido": apellido,
		"serviceId": svc.ID, "startTime": start.Format(time.RFC3339),
	})
	var created citaResp
	decode(t, rec, &created)

	rec = doJSON(t, r, http.MethodPatch, "/api/citas/"+created.Cita.ID, map[string]string{
		"status": "confirmed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated citaResp
	decode(t, rec, &updated)

	if updated.Cita.Status != "confirmed" {
		t.Errorf("status = %q, want confirmed", updated.Cita.Status)
	}
	if updated.Cita.PatientID != created.Cita.PatientID {
		t.Error("patientId changed")
	}
	if updated.Cita.ServiceID != created.Cita.ServiceID {
		t.Error("serviceId changed")
	}
	if !updated.Cita.StartTime.Equal(created.Cita.StartTime) {
		t.Error("startTime changed")
	}
	if !updated.Cita.EndTime.Equal(created.Cita.EndTime) {
		t.Error("endTime changed")
	}
}

func TestUpdateCitaServiceChangeRecomputesEnd(t *testing.T) {
	st, r := setup(t)
	svcShort := createService(t, st, 30)
	svcLong := createService(t, st, 60)
	nombre, apellido := uniqueName()

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	rec := doJSON(t, r, http.MethodPost, "/api/citas", map[string]string{
		"nombre": nombre, "apellido": apellido,
		"serviceId": svcShort.ID, "startTime": start.Format(time.RFC3339),
	})
	var created citaResp
	decode(t, rec, &created)

	rec = doJSON(t, r, http.MethodPut, "/api/citas/"+created.Cita.ID, map[string]string{
		"serviceId": svcLong.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	var updated citaResp
	decode(t, rec, &updated)

	if !updated.Cita.EndTime.Equal(start.Add(60 * time.Minute)) {
		t.Errorf("endTime = %v, want %v", updated.Cita.EndTime, start.Add(60*time.Minute))
	}
}

// Supplying only one of the two patient name fields must not rebind the
// patient; it is silently ignored.
func TestUpdateCitaPartialPatientName(t *testing.T) {
	st, r := setup(t)
	svc := createService(t, st, 30)
	nombre, apellido := uniqueName()

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	rec := doJSON(t, r, http.MethodPost, "/api/citas", map[string]string{
		"nombre": nombre, "apellido": apellido,
		"serviceId": svc.ID, "startTime": start.Format(time.RFC3339),
	})
	var created citaResp
	decode(t, rec, &created)

	rec = doJSON(t, r, http.MethodPatch, "/api/citas/"+created.Cita.ID, map[string]string{
		"patientFirstName": "Otro",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	var updated citaResp
	decode(t, rec, &updated)

	if updated.Cita.PatientID != created.Cita.PatientID {
		t.Error("patient rebound on partial name")
	}
}

func TestUpdateCitaUnknownServiceRef(t *testing.T) {
	st, r := setup(t)
	svc := createService(t, st, 30)
	nombre, apellido := uniqueName()

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	rec := doJSON(t, r, http.MethodPost, "/api/citas", map[string]string{
		"nombre": nombre, "apellido": apellido,
		"serviceId": svc.ID, "startTime": start.Format(time.RFC3339),
	})
	var created citaResp
	decode(t, rec, &created)

	// the FK catches the dangling reference at write time
	rec = doJSON(t, r, http.MethodPut, "/api/citas/"+created.Cita.ID, map[string]string{
		"serviceId": uuid.NewString(),
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteCita(t *testing.T) {
	st, r := setup(t)
	svc := createService(t, st, 30)
	nombre, apellido := uniqueName()

	rec := doJSON(t, r, http.MethodPost, "/api/citas", map[string]string{
		"nombre": nombre, "apellido": apellido,
		"serviceId": svc.ID,
		"startTime": time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	var created citaResp
	decode(t, rec, &created)

	rec = doJSON(t, r, http.MethodDelete, "/api/citas/"+created.Cita.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	if rec = doJSON(t, r, http.MethodDelete, "/api/citas/"+created.Cita.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
	if rec = doJSON(t, r, http.MethodGet, "/api/citas/"+created.Cita.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

// ----- pacientes -----

func TestPacienteCRUD(t *testing.T) {
	_, r := setup(t)
	nombre, apellido := uniqueName()

	if rec := doJSON(t, r, http.MethodPost, "/api/pacientes", map[string]string{"primerNombre": nombre}); rec.Code != http.StatusBadRequest {
		t.Errorf("create without apellido status = %d, want 400", rec.Code)
	}

	rec := doJSON(t, r, http.MethodPost, "/api/pacientes", map[string]string{
		"primerNombre": nombre, "apellido": apellido, "telefono": "555-0100",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Paciente models.Patient `json:"paciente"`
	}
	decode(t, rec, &created)

	rec = doJSON(t, r, http.MethodPut, "/api/pacientes/"+created.Paciente.ID, map[string]string{
		"direccion": "Av. Siempre Viva 742",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	var updated struct {
		Paciente models.Patient `json:"paciente"`
	}
	decode(t, rec, &updated)
	if updated.Paciente.PrimerNombre != nombre {
		t.Error("primerNombre changed on sparse update")
	}
	if updated.Paciente.Telefono == nil || *updated.Paciente.Telefono != "555-0100" {
		t.Error("telefono lost on sparse update")
	}
	if updated.Paciente.Direccion == nil || *updated.Paciente.Direccion != "Av. Siempre Viva 742" {
		t.Error("direccion not applied")
	}

	rec = doJSON(t, r, http.MethodDelete, "/api/pacientes/"+created.Paciente.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec = doJSON(t, r, http.MethodGet, "/api/pacientes/"+created.Paciente.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
	if rec = doJSON(t, r, http.MethodDelete, "/api/pacientes/"+created.Paciente.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

// The search filter is a case-insensitive substring over either name field.
func TestPacienteSearch(t *testing.T) {
	_, r := setup(t)
	nombre, apellido := uniqueName()

	rec := doJSON(t, r, http.MethodPost, "/api/pacientes", map[string]string{
		"primerNombre": nombre, "apellido": apellido,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	for _, q := range []string{nombre, strings.ToLower(nombre), apellido[3:9]} {
		rec = doJSON(t, r, http.MethodGet, "/api/pacientes?search="+q, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("search status = %d", rec.Code)
		}
		var resp struct {
			Pacientes []models.Patient `json:"pacientes"`
		}
		decode(t, rec, &resp)
		found := false
		for _, p := range resp.Pacientes {
			if p.PrimerNombre == nombre {
				found = true
			}
		}
		if !found {
			t.Errorf("search %q did not return the patient", q)
		}
	}
}

// ----- servicios -----

func TestServicioCRUD(t *testing.T) {
	_, r := setup(t)

	if rec := doJSON(t, r, http.MethodPost, "/api/servicios", map[string]interface{}{"name": "Consulta"}); rec.Code != http.StatusBadRequest {
		t.Errorf("create without duration/price status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodPost, "/api/servicios", map[string]interface{}{
		"name": "Consulta", "duration": 0, "price": 100,
	}); rec.Code != http.StatusBadRequest {
		t.Errorf("zero duration status = %d, want 400", rec.Code)
	}

	rec := doJSON(t, r, http.MethodPost, "/api/servicios", map[string]interface{}{
		"name": fmt.Sprintf("Consulta-%s", uuid.NewString()[:8]), "duration": 30, "price": 100,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created struct {
		Servicio models.Service `json:"servicio"`
	}
	decode(t, rec, &created)

	rec = doJSON(t, r, http.MethodPut, "/api/servicios/"+created.Servicio.ID, map[string]interface{}{
		"price": 120.5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	var updated struct {
		Servicio models.Service `json:"servicio"`
	}
	decode(t, rec, &updated)
	if updated.Servicio.Price != 120.5 {
		t.Errorf("price = %v, want 120.5", updated.Servicio.Price)
	}
	if updated.Servicio.Duration != 30 {
		t.Error("duration changed on sparse update")
	}

	rec = doJSON(t, r, http.MethodDelete, "/api/servicios/"+created.Servicio.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec = doJSON(t, r, http.MethodDelete, "/api/servicios/"+created.Servicio.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

// Deleting a service that appointments still reference is refused.
func TestServicioDeleteInUse(t *testing.T) {
	st, r := setup(t)
	svc := createService(t, st, 30)
	nombre, apellido := uniqueName()

	rec := doJSON(t, r, http.MethodPost, "/api/citas", map[string]string{
		"nombre": nombre, "apellido": apellido,
		"serviceId": svc.ID,
		"startTime": time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create cita status = %d", rec.Code)
	}

	if rec = doJSON(t, r, http.MethodDelete, "/api/servicios/"+svc.ID, nil); rec.Code != http.StatusConflict {
		t.Errorf("delete in-use service status = %d, want 409", rec.Code)
	}
}
