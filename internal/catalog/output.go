package catalog

import (
	"path/filepath"
	"strings"
)

// OutputPlan is where a decode of one input file writes its products.
type OutputPlan struct {
	WorkingDir  string `json:"working_dir"`
	BaseName    string `json:"base_name"`
	DecodedFile string `json:"decoded_file"`
}

// PlanOutput computes the standard output layout for inputFile. Products go
// under outputDir when it is set, otherwise next to the input, inside an
// OUTPUT_<NAME> directory unless the input already lives in one. It only
// computes paths; nothing is created.
func PlanOutput(inputFile, outputDir string) OutputPlan {
	name := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))

	working := filepath.Dir(inputFile)
	if outputDir != "" {
		working = outputDir
	}
	if !strings.Contains(inputFile, "/OUTPUT_") {
		working = filepath.Join(working, "OUTPUT_"+strings.ToUpper(name))
	}

	return OutputPlan{
		WorkingDir:  working,
		BaseName:    name,
		DecodedFile: filepath.Join(working, "decoded_"+strings.ToLower(name)+".bin"),
	}
}
