package main

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	"peakform/config"
	"peakform/database"
	programService "peakform/services/program"
)

// Imports seed program content from Programs.csv. One row per video, grouped
// into programs and courses by title. Columns: programTitle, programDescription,
// courseTitle, courseDescription, videoTitle, videoUrl, duration.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("Programs.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	// Group rows into program trees, keeping CSV order
	programs := make(map[string]*programService.ProgramGraph)
	var programOrder []string

	skipped := 0

	for _, row := range records[1:] {
		programTitle := getField(row, headerIndex, "programTitle")
		courseTitle := getField(row, headerIndex, "courseTitle")
		videoTitle := getField(row, headerIndex, "videoTitle")
		videoURL := getField(row, headerIndex, "videoUrl")

		if programTitle == "" || courseTitle == "" || videoTitle == "" || videoURL == "" {
			skipped++
			continue
		}

		graph, exists := programs[programTitle]
		if !exists {
			graph = &programService.ProgramGraph{
				Title:       programTitle,
				Description: getField(row, headerIndex, "programDescription"),
			}
			programs[programTitle] = graph
			programOrder = append(programOrder, programTitle)
		}

		var course *programService.CourseGraph
		for i := range graph.Courses {
			if graph.Courses[i].Title == courseTitle {
				course = &graph.Courses[i]
				break
			}
		}
		if course == nil {
			graph.Courses = append(graph.Courses, programService.CourseGraph{
				Title:       courseTitle,
				Description: getField(row, headerIndex, "courseDescription"),
			})
			course = &graph.Courses[len(graph.Courses)-1]
		}

		course.Videos = append(course.Videos, programService.VideoGraph{
			Title:    videoTitle,
			VideoURL: videoURL,
			Duration: getField(row, headerIndex, "duration"),
		})
	}

	imported := 0
	failed := 0

	for _, title := range programOrder {
		id, err := programService.SaveProgram(database.Database.Db, programs[title])
		if err != nil {
			log.Printf("Error importing program %s: %v", title, err)
			failed++
			continue
		}
		log.Printf("Imported program %s (id=%s)", title, id)
		imported++
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Imported: %d", imported)
	log.Printf("Failed: %d", failed)
	log.Printf("Skipped rows: %d", skipped)
}

func getField(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
