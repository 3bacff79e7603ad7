package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ExaminationHeader is the header row of an examination CSV file
const ExaminationHeader = "id,age,gender,height,weight,ap_hi,ap_lo,cholesterol,gluc,smoke,alco,active,cardio\n"

// ExaminationCSV returns n synthetic examination records. Record i has
// height 150+i and weight 50+(7i mod 40), so with n = 40 both columns
// cover 40 distinct values and the 2.5/97.5 percentile bands drop ids 0,
// 17 and 39. Systolic pressure is 120 and diastolic 80, except for the
// ids in inverted whose diastolic pressure is 130.
func ExaminationCSV(n int, inverted ...int) string {
	flip := make(map[int]bool, len(inverted))
	for _, id := range inverted {
		flip[id] = true
	}

	var b strings.Builder
	b.WriteString(ExaminationHeader)
	for i := 0; i < n; i++ {
		apLo := 80
		if flip[i] {
			apLo = 130
		}
		fmt.Fprintf(&b, "%d,%d,%d,%d,%d,120,%d,%d,%d,%d,%d,%d,%d\n",
			i, 15000+100*i, 1+i%2, 150+i, 50+(i*7)%40, apLo,
			1+i%3, 1+(i/2)%3, i%5/4, i%7/6, 1-i%4/3, i%2)
	}
	return b.String()
}

// WriteFile writes content to dir/name and returns the path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
