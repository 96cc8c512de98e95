package integrity

import (
	"errors"

	"preset-manager/core/logger"
	"preset-manager/core/preset"
	"preset-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/presets", h.HandlePresetsCheck)
	group.Get("/backups", h.HandleBackupsCheck)
	group.Get("/mirror", h.HandleMirrorCheck)
	group.Get("/catalog", h.HandleCatalogCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs every integrity check (Structure, Presets, Backups, Mirror, Catalog) without fixing anything. Checks whose backend is not configured report "disabled".
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = statusOf(err)
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if presets, err := h.service.CheckPresets(); err != nil {
		report["presets"] = statusOf(err)
	} else {
		report["presets"] = presets
	}

	if backups, err := h.service.CheckBackups(); err != nil {
		report["backups"] = statusOf(err)
	} else {
		report["backups"] = backups
	}

	if mirror, err := h.service.CheckMirror(ctx); err != nil {
		report["mirror"] = statusOf(err)
	} else {
		report["mirror"] = mirror
	}

	if catalog, err := h.service.CheckCatalog(); err != nil {
		report["catalog"] = statusOf(err)
	} else {
		report["catalog"] = catalog
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes the bucket structure.
// @Summary Check Structure
// @Description Checks that the bucket and its backup folders exist. Optionally creates them.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket and missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ParseBool(c.Query("fix"), false)

	missing, err := h.service.CheckStructure(c.Context())
	switch {
	case err == nil:
	case fix && !Disabled(err):
		// FixStructure creates the bucket, so every folder is rebuilt.
		l.Warn("Structure check failed, rebuilding", zap.Error(err))
		missing = h.service.Folders()
	default:
		return h.fail(c, "Structure check failed", err)
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandlePresetsCheck scans the preset library and optionally reseals it.
// @Summary Check Presets
// @Description Loads every library file and reports invalid, stale, unsealed and unsupported ones. With fix, stale and unsealed presets are rewritten with a fresh checksum.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Reseal stale and unsealed presets"
// @Success 200 {object} checks.LibraryReport "Library Report"
// @Failure 404 {object} map[string]string "Library directory missing"
// @Router /integrity/presets [get]
func (h *Handler) HandlePresetsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckPresets()
	if err != nil {
		return h.fail(c, "Preset scan failed", err)
	}

	l.Info("Preset scan completed",
		zap.Int("scanned", report.Scanned),
		zap.Int("valid", report.Valid),
		zap.Int("invalid", len(report.Invalid)))

	if !utils.ParseBool(c.Query("fix"), false) || len(report.Stale)+len(report.Unsealed) == 0 {
		return c.JSON(report)
	}

	failed := h.service.FixPresets(report)
	return c.JSON(fiber.Map{
		"status": "fixed",
		"report": report,
		"failed": failed,
	})
}

// HandleBackupsCheck scans the backup directory.
// @Summary Check Backups
// @Description Groups the backups and reports those retention never prunes and those whose preset left the library.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.BackupReport "Backup Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/backups [get]
func (h *Handler) HandleBackupsCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckBackups()
	if err != nil {
		return h.fail(c, "Backup scan failed", err)
	}
	return c.JSON(report)
}

// HandleMirrorCheck compares local backups with the mirror.
// @Summary Check Mirror
// @Description Lists local backups missing from object storage. Optionally uploads them.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Upload missing backups"
// @Success 200 {object} checks.MirrorReport "Mirror Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Mirror not enabled"
// @Router /integrity/mirror [get]
func (h *Handler) HandleMirrorCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckMirror(c.Context())
	if err != nil {
		return h.fail(c, "Mirror check failed", err)
	}

	if !utils.ParseBool(c.Query("fix"), false) || len(report.Missing) == 0 {
		return c.JSON(report)
	}

	l.Info("Uploading missing backups", zap.Int("count", len(report.Missing)))
	failed, err := h.service.FixMirror(c.Context(), report.Missing)
	if err != nil {
		return h.fail(c, "Mirror fix failed", err)
	}
	return c.JSON(fiber.Map{
		"status": "fixed",
		"report": report,
		"failed": failed,
	})
}

// HandleCatalogCheck checks the revision table schema.
// @Summary Check Catalog
// @Description Checks that the revision table has every column of the revision model. Optionally migrates it.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Migrate the revision table"
// @Success 200 {object} checks.CatalogReport "Catalog Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Catalog not configured"
// @Router /integrity/catalog [get]
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckCatalog()
	if err != nil {
		return h.fail(c, "Catalog check failed", err)
	}

	if !utils.ParseBool(c.Query("fix"), false) || report.Matched {
		return c.JSON(report)
	}

	l.Info("Migrating revision table", zap.Strings("missing", report.MissingColumns))
	if err := h.service.FixCatalog(); err != nil {
		return h.fail(c, "Catalog migration failed", err)
	}
	return c.JSON(fiber.Map{
		"status": "fixed",
		"fixed":  report.MissingColumns,
	})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case Disabled(err):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, preset.ErrNotFound):
		status = fiber.StatusNotFound
	}

	l := logger.WithRayID(h.service.logger, c)
	l.Error(msg, zap.Error(err))
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusOf(err error) map[string]interface{} {
	if Disabled(err) {
		return map[string]interface{}{"status": "disabled", "error": err.Error()}
	}
	return map[string]interface{}{"status": "error", "error": err.Error()}
}
