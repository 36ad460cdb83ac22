package program

import (
	"errors"
	"log"

	programModels "peakform/models/program"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEmptyTitle = errors.New("program title is required")

// VideoGraph is a video node in the editable program tree.
// Duration carries the presentation "m:ss" form; storage is seconds.
type VideoGraph struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     string    `json:"duration"`
	OrderIndex   int       `json:"order"`
}

// CourseGraph is a course node in the editable program tree
type CourseGraph struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Disclaimer  string       `json:"disclaimer"`
	Notes       string       `json:"notes"`
	Options     []string     `json:"options"`
	Videos      []VideoGraph `json:"videos"`
}

// ProgramGraph is the full editable program tree the admin UI works with
type ProgramGraph struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Duration    string        `json:"duration"`
	Difficulty  string        `json:"difficulty"`
	Focus       string        `json:"focus"`
	Cost        string        `json:"cost"`
	ImageURL    string        `json:"image_url"`
	Courses     []CourseGraph `json:"courses"`
}

// SaveProgram upserts the whole program tree in one transaction: the program
// row, then each course in array order (array position becomes order_index),
// then each course's videos likewise. Videos without a URL are skipped with a
// logged warning. The first error aborts and rolls back everything.
func SaveProgram(db *gorm.DB, graph *ProgramGraph) (uuid.UUID, error) {
	if graph == nil || graph.Title == "" {
		return uuid.Nil, ErrEmptyTitle
	}

	if graph.ID == uuid.Nil {
		graph.ID = uuid.New()
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		prog := programModels.Program{
			ID:          graph.ID,
			Title:       graph.Title,
			Description: graph.Description,
			Duration:    graph.Duration,
			Difficulty:  graph.Difficulty,
			Focus:       graph.Focus,
			Cost:        graph.Cost,
			ImageURL:    graph.ImageURL,
			IsActive:    true,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&prog).Error; err != nil {
			log.Printf("Error saving program %s: %v", graph.Title, err)
			return err
		}

		for courseIndex := range graph.Courses {
			cg := &graph.Courses[courseIndex]
			if cg.ID == uuid.Nil {
				cg.ID = uuid.New()
			}

			course := programModels.Course{
				ID:          cg.ID,
				ProgramID:   prog.ID,
				Title:       cg.Title,
				Description: cg.Description,
				Disclaimer:  cg.Disclaimer,
				Notes:       cg.Notes,
				Options:     cg.Options,
				OrderIndex:  courseIndex,
				IsActive:    true,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&course).Error; err != nil {
				log.Printf("Error saving course %s: %v", cg.Title, err)
				return err
			}

			for videoIndex := range cg.Videos {
				vg := &cg.Videos[videoIndex]
				if vg.VideoURL == "" {
					log.Printf("Warning: skipping video without URL: %s", vg.Title)
					continue
				}
				if vg.ID == uuid.Nil {
					vg.ID = uuid.New()
				}

				seconds, _ := DurationToSeconds(vg.Duration)
				video := programModels.Video{
					ID:              vg.ID,
					CourseID:        course.ID,
					Title:           vg.Title,
					Description:     vg.Description,
					VideoURL:        vg.VideoURL,
					ThumbnailURL:    vg.ThumbnailURL,
					DurationSeconds: seconds,
					OrderIndex:      videoIndex,
					IsActive:        true,
				}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "id"}},
					UpdateAll: true,
				}).Create(&video).Error; err != nil {
					log.Printf("Error saving video %s: %v", vg.Title, err)
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return graph.ID, nil
}

// LoadProgram reassembles the program tree: the active program row, its active
// courses ordered by order_index, and each course's active videos likewise,
// with durations reconverted to "m:ss" form. Returns nil when the program is
// missing or inactive, or when any query fails (logged, not surfaced).
func LoadProgram(db *gorm.DB, programID uuid.UUID) *ProgramGraph {
	var prog programModels.Program
	if err := db.Where("id = ? AND is_active = ?", programID, true).First(&prog).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error loading program %s: %v", programID, err)
		}
		return nil
	}

	var courses []programModels.Course
	if err := db.Where("program_id = ? AND is_active = ?", programID, true).
		Order("order_index asc").Find(&courses).Error; err != nil {
		log.Printf("Error loading courses for program %s: %v", programID, err)
		return nil
	}

	courseIDs := make([]uuid.UUID, len(courses))
	for i, course := range courses {
		courseIDs[i] = course.ID
	}

	var videos []programModels.Video
	if len(courseIDs) > 0 {
		if err := db.Where("course_id IN ? AND is_active = ?", courseIDs, true).
			Order("order_index asc").Find(&videos).Error; err != nil {
			log.Printf("Error loading videos for program %s: %v", programID, err)
			return nil
		}
	}

	// Group videos by course
	videosByCourse := make(map[uuid.UUID][]programModels.Video)
	for _, video := range videos {
		videosByCourse[video.CourseID] = append(videosByCourse[video.CourseID], video)
	}

	graph := &ProgramGraph{
		ID:          prog.ID,
		Title:       prog.Title,
		Description: prog.Description,
		Duration:    prog.Duration,
		Difficulty:  prog.Difficulty,
		Focus:       prog.Focus,
		Cost:        prog.Cost,
		ImageURL:    prog.ImageURL,
		Courses:     make([]CourseGraph, len(courses)),
	}

	for i, course := range courses {
		cg := CourseGraph{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			Disclaimer:  course.Disclaimer,
			Notes:       course.Notes,
			Options:     course.Options,
		}
		for _, video := range videosByCourse[course.ID] {
			cg.Videos = append(cg.Videos, VideoGraph{
				ID:           video.ID,
				Title:        video.Title,
				Description:  video.Description,
				VideoURL:     video.VideoURL,
				ThumbnailURL: video.ThumbnailURL,
				Duration:     SecondsToDuration(video.DurationSeconds),
				OrderIndex:   video.OrderIndex,
			})
		}
		graph.Courses[i] = cg
	}

	return graph
}

// GetAllPrograms lists all active programs, newest first.
// Returns an empty slice on query failure.
func GetAllPrograms(db *gorm.DB) []programModels.Program {
	var programs []programModels.Program
	if err := db.Where("is_active = ?", true).
		Order("created_at desc").Find(&programs).Error; err != nil {
		log.Printf("Error loading programs: %v", err)
		return []programModels.Program{}
	}
	return programs
}

// DeleteProgram retires a program by clearing its active flag
func DeleteProgram(db *gorm.DB, programID uuid.UUID) bool {
	if err := db.Model(&programModels.Program{}).
		Where("id = ?", programID).
		Update("is_active", false).Error; err != nil {
		log.Printf("Error deleting program %s: %v", programID, err)
		return false
	}
	return true
}

// DeleteVideo hard-deletes a single video row
func DeleteVideo(db *gorm.DB, videoID uuid.UUID) bool {
	if err := db.Where("id = ?", videoID).
		Delete(&programModels.Video{}).Error; err != nil {
		log.Printf("Error deleting video %s: %v", videoID, err)
		return false
	}
	return true
}
