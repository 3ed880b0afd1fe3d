package classes

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

var validate = validator.New()

// ListClasses returns classes with live pupil counts. ?all=true includes
// archived classes.
func ListClasses(c *fiber.Ctx, db *sql.DB) error {
	var (
		list []*models.SchoolClass
		err  error
	)
	if c.Query("all") == "true" {
		list, err = database.ListAllClasses(db)
	} else {
		list, err = database.ListLiveClasses(db)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch classes",
		})
	}

	for _, class := range list {
		count, err := database.CountPupilsInClass(db, class.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to count pupils",
			})
		}
		class.PupilCount = count
	}
	return c.JSON(list)
}

// CreateClass adds a teaching class
func CreateClass(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		Name      string `json:"name" validate:"required"`
		YearGroup *int   `json:"year_group" validate:"omitempty,min=1,max=6"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required and year_group must be 1-6",
		})
	}

	class := &models.SchoolClass{Name: request.Name, YearGroup: request.YearGroup}
	if err := database.CreateClass(db, class); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create class",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(class)
}

// ListClassPupils returns a class's pupils. With ?year_id=<past year> the
// roster is resolved through the placement history.
func ListClassPupils(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("id")
	class, err := database.GetClassByID(db, classID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch class",
		})
	}
	if class == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	yearID := c.Query("year_id")
	if yearID != "" {
		ids, err := database.EffectivePupilIDs(db, classID, yearID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve pupils",
			})
		}
		pupils := make([]*models.Pupil, 0, len(ids))
		for _, id := range ids {
			p, err := database.GetPupilByID(db, id)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to fetch pupil",
				})
			}
			if p != nil {
				pupils = append(pupils, p)
			}
		}
		return c.JSON(pupils)
	}

	pupils, err := database.ListPupilsByClass(db, classID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch pupils",
		})
	}
	return c.JSON(pupils)
}

// EnsureArchive repairs or creates the canonical archive class
func EnsureArchive(c *fiber.Ctx, db *sql.DB) error {
	archive, err := database.EnsureArchiveClass(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to ensure archive class",
		})
	}
	return c.JSON(archive)
}

// CreatePupil adds a pupil to a class
func CreatePupil(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		ClassID      string  `json:"class_id" validate:"required"`
		Name         string  `json:"name" validate:"required"`
		Number       *int    `json:"number"`
		Gender       *string `json:"gender" validate:"omitempty,oneof=M F"`
		PupilPremium bool    `json:"pupil_premium"`
		Laps         bool    `json:"laps"`
		ServiceChild bool    `json:"service_child"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "class_id and name are required",
		})
	}

	class, err := database.GetClassByID(db, request.ClassID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch class",
		})
	}
	if class == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	pupil := &models.Pupil{
		ClassID:      request.ClassID,
		Name:         request.Name,
		Number:       request.Number,
		Gender:       request.Gender,
		PupilPremium: request.PupilPremium,
		Laps:         request.Laps,
		ServiceChild: request.ServiceChild,
	}
	if err := database.CreatePupil(db, pupil); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create pupil",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(pupil)
}

// GetPupilHistory returns a pupil's placement trail
func GetPupilHistory(c *fiber.Ctx, db *sql.DB) error {
	history, err := database.HistoryForPupil(db, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch history",
		})
	}
	return c.JSON(history)
}

// GetPupilProfile returns (creating if needed) a pupil's cohort profile
func GetPupilProfile(c *fiber.Ctx, db *sql.DB) error {
	pupilID := c.Params("id")
	pupil, err := database.GetPupilByID(db, pupilID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch pupil",
		})
	}
	if pupil == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Pupil not found",
		})
	}

	profile, err := database.GetOrCreatePupilProfile(db, pupilID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch profile",
		})
	}
	return c.JSON(profile)
}

// UpdatePupilProfile rewrites a pupil's cohort flags
func UpdatePupilProfile(c *fiber.Ctx, db *sql.DB) error {
	pupilID := c.Params("id")
	profile, err := database.GetOrCreatePupilProfile(db, pupilID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch profile",
		})
	}

	var request struct {
		YearGroup       *int    `json:"year_group"`
		LacPla          bool    `json:"lac_pla"`
		Send            bool    `json:"send"`
		Ehcp            bool    `json:"ehcp"`
		Vulnerable      bool    `json:"vulnerable"`
		EyfsGld         *bool   `json:"eyfs_gld"`
		Y1Phonics       *int    `json:"y1_phonics"`
		Y2PhonicsRetake *int    `json:"y2_phonics_retake"`
		Enrichment      *string `json:"enrichment"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	profile.YearGroup = request.YearGroup
	profile.LacPla = request.LacPla
	profile.Send = request.Send
	profile.Ehcp = request.Ehcp
	profile.Vulnerable = request.Vulnerable
	profile.EyfsGld = request.EyfsGld
	profile.Y1Phonics = request.Y1Phonics
	profile.Y2PhonicsRetake = request.Y2PhonicsRetake
	profile.Enrichment = request.Enrichment

	if err := database.UpdatePupilProfile(db, profile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}
	return c.JSON(profile)
}
