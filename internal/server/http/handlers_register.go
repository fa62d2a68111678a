package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/sitereg/internal/models"
	"github.com/dmitrijs2005/sitereg/internal/server/forms"
	"github.com/dmitrijs2005/sitereg/internal/server/services"
)

// Multipart parts above this size spill to temporary files.
const multipartMemory = 8 << 20

// mobilityMaxBytes caps the JSON body of a mobility account registration.
const mobilityMaxBytes = 64 << 10

type receiptResponse struct {
	ID                   string `json:"id"`
	Message              string `json:"message"`
	RedirectTo           string `json:"redirect_to"`
	RedirectAfterSeconds int    `json:"redirect_after_seconds"`
}

func newReceiptResponse(r *services.Receipt, message string) receiptResponse {
	return receiptResponse{
		ID:                   r.ID,
		Message:              message,
		RedirectTo:           r.RedirectTo,
		RedirectAfterSeconds: int(r.RedirectAfter.Seconds()),
	}
}

func (h *Handler) installationOptions(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, h.svc.Registration.Options())
}

func (h *Handler) registerInstallation(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)

	var (
		form    forms.InstallationForm
		uploads []services.Upload
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			h.badBody(w, err)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		form = installationFormFromValues(r.MultipartForm.Value)
		var closeAll func()
		var err error
		uploads, closeAll, err = uploadsFromMultipart(r.MultipartForm.File)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		defer closeAll()
	} else if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.badBody(w, err)
		return
	}

	receipt, err := h.svc.Registration.SubmitInstallation(r.Context(), form, uploads)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, newReceiptResponse(receipt, "Installation registered successfully"))
}

func (h *Handler) registerMobility(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, mobilityMaxBytes)

	var form forms.MobilityForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.badBody(w, err)
		return
	}

	receipt, err := h.svc.Registration.SubmitMobilityAccount(r.Context(), form)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, newReceiptResponse(receipt, "Mobility account registered successfully"))
}

func (h *Handler) badBody(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
}

func installationFormFromValues(v map[string][]string) forms.InstallationForm {
	get := func(name string) string {
		if vals := v[name]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}
	return forms.InstallationForm{
		IntersectionName:     get("intersection_name"),
		EndUser:              get("end_user"),
		Distributor:          get("distributor"),
		DistributorOther:     get("distributor_other"),
		CabinetType:          get("cabinet_type"),
		CabinetTypeOther:     get("cabinet_type_other"),
		TLSConnection:        get("tls_connection"),
		TLSConnectionOther:   get("tls_connection_other"),
		DetectionIO:          get("detection_io"),
		DetectionIOOther:     get("detection_io_other"),
		PhasingFiles:         v["phasing_files"],
		TimingFiles:          v["timing_files"],
		ContactName:          get("contact_name"),
		ContactEmail:         get("contact_email"),
		ContactPhone:         get("contact_phone"),
		EstimatedInstallDate: get("estimated_install_date"),
	}
}

var uploadFields = []struct {
	name string
	kind models.AttachmentKind
}{
	{"phasing_files", models.AttachmentPhasing},
	{"timing_files", models.AttachmentTiming},
}

// uploadsFromMultipart opens every uploaded file. The returned func closes
// them all.
func uploadsFromMultipart(files map[string][]*multipart.FileHeader) ([]services.Upload, func(), error) {
	var (
		uploads []services.Upload
		opened  []multipart.File
	)
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, field := range uploadFields {
		for _, fh := range files[field.name] {
			f, err := fh.Open()
			if err != nil {
				closeAll()
				return nil, func() {}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
			}
			opened = append(opened, f)
			uploads = append(uploads, services.Upload{
				Kind:        field.kind,
				FileName:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Body:        f,
			})
		}
	}
	return uploads, closeAll, nil
}
