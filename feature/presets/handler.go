package presets

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"preset-manager/core/backup"
	"preset-manager/core/codec"
	"preset-manager/core/library"
	"preset-manager/core/logger"
	"preset-manager/core/preset"
	"preset-manager/core/schema"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for presets and backups.
type Handler struct {
	service *Service
	// ext is appended to preset names written without an extension.
	ext string
}

// TemplateRequest is the body of a template synthesis request.
type TemplateRequest struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
	// File is the library name to save to; empty returns the template only.
	File string `json:"file"`
}

// NewHandler creates a new HTTP handler. ext is the default file extension
// for names without one.
func NewHandler(service *Service, ext string) *Handler {
	if ext == "" {
		ext = ".xml"
	}
	return &Handler{service: service, ext: ext}
}

// RegisterRoutes registers the preset, backup and template routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/presets")
	group.Get("/", h.HandleList)
	group.Get("/:name", h.HandleGet)
	group.Put("/:name", h.HandlePut)
	group.Get("/:name/validate", h.HandleValidate)
	group.Get("/:name/diff/:other", h.HandleDiff)
	group.Post("/:name/convert", h.HandleConvert)
	group.Post("/:name/backup", h.HandleBackup)
	group.Get("/:name/history", h.HandleHistory)

	backups := app.Group("/backups")
	backups.Get("/", h.HandleListBackups)
	backups.Post("/prune", h.HandlePrune)
	backups.Post("/:name/restore", h.HandleRestore)

	app.Post("/templates", h.HandleTemplate)
}

// HandleList lists the preset library.
// @Summary List Presets
// @Description Lists the preset files of the library, newest first. Optionally filtered by extension.
// @Tags presets
// @Produce json
// @Param ext query string false "Extension filter (xml, json, yaml)"
// @Success 200 {array} library.Entry "Library entries"
// @Failure 404 {object} map[string]string "Library directory missing"
// @Router /presets [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	entries, err := h.service.ListConfigs(c.Query("ext"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entries)
}

// HandleGet returns the canonical document of a preset.
// @Summary Get Preset
// @Description Loads a preset in any supported format and returns its canonical document.
// @Tags presets
// @Produce json
// @Param name path string true "Preset file name"
// @Success 200 {object} map[string]interface{} "Canonical document"
// @Failure 404 {object} map[string]string "Preset not found"
// @Failure 422 {object} map[string]string "Invalid preset"
// @Router /presets/{name} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	path, err := h.resolve(c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}
	cfg, err := h.service.Load(path)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cfg.Document())
}

// HandlePut stores a preset sent in the request body.
// @Summary Save Preset
// @Description Validates a preset document (JSON, YAML or XML by Content-Type) and writes it in the format of the target name.
// @Tags presets
// @Accept json
// @Accept xml
// @Produce json
// @Param name path string true "Preset file name"
// @Success 200 {object} map[string]interface{} "Saved preset"
// @Failure 400 {object} map[string]string "Unsupported format"
// @Failure 422 {object} map[string]string "Invalid preset"
// @Router /presets/{name} [put]
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	path, err := h.resolve(c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}

	parser, err := codec.ForPath("body"+bodyExtension(c.Get(fiber.HeaderContentType)), h.service.logger)
	if err != nil {
		return h.fail(c, err)
	}
	cfg, err := parser.Parse(c.Body(), "request body")
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.service.Save(c.UserContext(), cfg, path); err != nil {
		return h.fail(c, err)
	}

	l.Info("Stored preset", zap.String("path", path))
	return c.JSON(fiber.Map{
		"path":        path,
		"fingerprint": cfg.Fingerprint(),
	})
}

// HandleValidate validates a preset.
// @Summary Validate Preset
// @Description Loads and validates a preset and reports its fingerprint.
// @Tags presets
// @Produce json
// @Param name path string true "Preset file name"
// @Success 200 {object} Validation "Validation result"
// @Failure 422 {object} map[string]string "Invalid preset"
// @Router /presets/{name}/validate [get]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	path, err := h.resolve(c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}
	result, err := h.service.Validate(path)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"path":        result.Path,
		"fingerprint": result.Fingerprint,
		"stale":       result.Stale,
		"message":     result.String(),
	})
}

// HandleDiff compares two presets.
// @Summary Compare Presets
// @Description Compares two presets of any formats and returns the categorized differences.
// @Tags presets
// @Produce json
// @Param name path string true "First preset file name"
// @Param other path string true "Second preset file name"
// @Success 200 {object} map[string]interface{} "Report and rendered lines"
// @Failure 404 {object} map[string]string "Preset not found"
// @Router /presets/{name}/diff/{other} [get]
func (h *Handler) HandleDiff(c *fiber.Ctx) error {
	a, err := h.resolve(c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}
	b, err := h.resolve(c.Params("other"))
	if err != nil {
		return h.fail(c, err)
	}

	report, err := h.service.Compare(a, b)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"report": report,
		"lines":  report.Lines(),
	})
}

// HandleConvert converts a preset to another format next to it.
// @Summary Convert Preset
// @Description Writes the preset under the same name with the extension of the target format.
// @Tags presets
// @Produce json
// @Param name path string true "Preset file name"
// @Param to query string true "Target format (xml, json, yaml)"
// @Success 200 {object} map[string]string "Converted file"
// @Failure 400 {object} map[string]string "Unsupported format"
// @Router /presets/{name}/convert [post]
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	src, err := h.resolve(c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}

	to := strings.TrimPrefix(strings.ToLower(c.Query("to")), ".")
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + "." + to
	if !codec.IsSupported(dst) {
		return h.fail(c, preset.ErrUnsupportedFormat)
	}

	if _, err := h.service.Convert(c.UserContext(), src, dst); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"path": dst})
}

// HandleBackup backs up a preset.
// @Summary Backup Preset
// @Description Copies the preset into the backup directory with a timestamp suffix.
// @Tags backups
// @Produce json
// @Param name path string true "Preset file name"
// @Success 201 {object} map[string]string "Backup path"
// @Failure 404 {object} map[string]string "Preset not found"
// @Router /presets/{name}/backup [post]
func (h *Handler) HandleBackup(c *fiber.Ctx) error {
	path, err := h.resolve(c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}
	if err := library.Guard(path, h.service.maxBytes); err != nil {
		return h.fail(c, err)
	}

	target, err := h.service.Backup(c.UserContext(), path)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"backup": target})
}

// HandleHistory lists the recorded revisions of a preset.
// @Summary Preset History
// @Description Lists saves, backups and restores recorded in the revision catalog, newest first.
// @Tags presets
// @Produce json
// @Param name path string true "Preset name (extension ignored)"
// @Param limit query int false "Maximum number of revisions"
// @Success 200 {array} models.Revision "Revisions"
// @Failure 503 {object} map[string]string "Catalog disabled"
// @Router /presets/{name}/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	name := c.Params("name")
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	revisions, err := h.service.History(c.UserContext(), stem, c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(revisions)
}

// HandleListBackups lists backups.
// @Summary List Backups
// @Description Lists backup files, newest first.
// @Tags backups
// @Produce json
// @Success 200 {array} backup.Entry "Backups"
// @Router /backups [get]
func (h *Handler) HandleListBackups(c *fiber.Ctx) error {
	entries, err := h.service.ListBackups()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entries)
}

// HandlePrune applies the retention policy.
// @Summary Prune Backups
// @Description Keeps the newest backups of every preset and deletes the rest.
// @Tags backups
// @Produce json
// @Param max query int true "Backups kept per preset"
// @Success 200 {object} map[string]interface{} "Deleted backups"
// @Failure 400 {object} map[string]string "Invalid max"
// @Router /backups/prune [post]
func (h *Handler) HandlePrune(c *fiber.Ctx) error {
	maxPerGroup, err := strconv.Atoi(c.Query("max"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "max must be an integer"})
	}

	deleted, err := h.service.Prune(c.UserContext(), maxPerGroup)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"deleted": deleted,
		"count":   len(deleted),
	})
}

// HandleRestore restores a backup into the library.
// @Summary Restore Backup
// @Description Overwrites a library preset with a backup. The target defaults to the backup's original name.
// @Tags backups
// @Produce json
// @Param name path string true "Backup file name"
// @Param target query string false "Library file name to restore into"
// @Success 200 {object} map[string]string "Restored file"
// @Failure 404 {object} map[string]string "Backup not found"
// @Router /backups/{name}/restore [post]
func (h *Handler) HandleRestore(c *fiber.Ctx) error {
	name := c.Params("name")
	backupPath, err := library.Resolve(h.service.BackupDir(), name)
	if err != nil {
		return h.fail(c, err)
	}

	targetName := c.Query("target")
	if targetName == "" {
		ext := filepath.Ext(name)
		group := backup.GroupOf(strings.TrimSuffix(name, ext))
		if group == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot derive restore target from " + name})
		}
		targetName = group + ext
	}
	target, err := h.service.Resolve(targetName)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.service.Restore(c.UserContext(), backupPath, target); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"restored": target})
}

// HandleTemplate synthesizes a template.
// @Summary Create Template
// @Description Synthesizes a default preset for a Voicemeeter variant and optionally saves it into the library.
// @Tags templates
// @Accept json
// @Produce json
// @Param request body TemplateRequest true "Template request"
// @Success 200 {object} map[string]interface{} "Canonical document"
// @Failure 400 {object} map[string]string "Unknown variant"
// @Router /templates [post]
func (h *Handler) HandleTemplate(c *fiber.Ctx) error {
	var req TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	path := ""
	if req.File != "" {
		resolved, err := h.resolve(req.File)
		if err != nil {
			return h.fail(c, err)
		}
		path = resolved
	}

	cfg, err := h.service.Synthesize(c.UserContext(), req.Name, preset.Variant(req.Variant), path)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cfg.Document())
}

// resolve maps a request name to a library path, appending the default
// extension to names without one.
func (h *Handler) resolve(name string) (string, error) {
	if filepath.Ext(name) == "" {
		name += h.ext
	}
	return h.service.Resolve(name)
}

// fail writes err with the status matching its kind.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	body := fiber.Map{"error": err.Error()}

	var violation *schema.Violation
	if errors.As(err, &violation) {
		body["path"] = violation.Path
		body["rule"] = violation.Rule
	}

	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error("Preset request failed", zap.Error(err))
	} else {
		l.Warn("Preset request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(body)
}

// StatusFor maps an engine error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, preset.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, preset.ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, library.ErrTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, preset.ErrUnsupportedFormat),
		errors.Is(err, preset.ErrUnknownVariant),
		errors.Is(err, library.ErrOutsideLibrary):
		return fiber.StatusBadRequest
	case errors.Is(err, backup.ErrSameFile):
		return fiber.StatusConflict
	case errors.Is(err, ErrCatalogDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// bodyExtension maps a request content type to a codec extension.
func bodyExtension(contentType string) string {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch {
	case strings.HasSuffix(mediaType, "xml"):
		return ".xml"
	case strings.HasSuffix(mediaType, "yaml"):
		return ".yaml"
	default:
		return ".json"
	}
}
