package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleCSV holds four examination records with known derived values:
//
//	id 0: BMI 21.97, cardio 0
//	id 1: BMI 34.93, cholesterol 3
//	id 2: BMI 23.51, cholesterol 3, gluc 2
//	id 3: BMI 28.71, smoker, drinker
const sampleCSV = `id,age,gender,height,weight,ap_hi,ap_lo,cholesterol,gluc,smoke,alco,active,cardio
0,18393,2,168,62.0,110,80,1,1,0,0,1,0
1,20228,1,156,85.0,140,90,3,1,0,0,1,1
2,18857,1,165,64.0,130,70,3,2,0,0,0,1
3,17623,2,169,82.0,150,100,1,1,1,1,1,1
`

const sampleHeader = "id,age,gender,height,weight,ap_hi,ap_lo,cholesterol,gluc,smoke,alco,active,cardio\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := LoadDataset(writeTemp(t, "medical_examination.csv", sampleCSV), DefaultParseOptions())
	require.NoError(t, err)
	return ds
}
