package textextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want TextType
	}{
		{"dimension with unit", "3000MM", TypeDimension},
		{"dimension decimal metres", "2.4M", TypeDimension},
		{"dimension bare number", "1500", TypeDimension},
		{"dimension spaced unit", "300 CM", TypeDimension},
		{"element label", "WALL", TypeElementLabel},
		{"element label in phrase", "WALL TYPE 2", TypeElementLabel},
		{"element label lowercase", "door", TypeElementLabel},
		{"room name", "KITCHEN", TypeRoomName},
		{"room name numbered", "BEDROOM 1", TypeRoomName},
		{"material", "CONCRETE", TypeMaterial},
		{"material with grade", "CONCRETE C30", TypeMaterial},
		{"specification phrase", "FIRE RATED", TypeSpecification},
		{"specification insulated", "INSULATED", TypeSpecification},
		{"bare fire is material", "FIRE", TypeMaterial},
		{"general text", "SHEET 3 OF 12", TypeGeneral},
		{"empty", "", TypeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Classify(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDimensionDerivedValue(t *testing.T) {
	textType, derived := Classify("3000MM")
	require.Equal(t, TypeDimension, textType)
	require.NotNil(t, derived)
	assert.Equal(t, 3000.0, derived.Value)
	assert.Equal(t, "MM", derived.Unit)
}

func TestClassifyBareNumberDefaultsToMillimetres(t *testing.T) {
	textType, derived := Classify("2500")
	require.Equal(t, TypeDimension, textType)
	require.NotNil(t, derived)
	assert.Equal(t, 2500.0, derived.Value)
	assert.Equal(t, "MM", derived.Unit)
}

func TestClassifyMaterialGrade(t *testing.T) {
	textType, derived := Classify("CONCRETE C30/37")
	require.Equal(t, TypeMaterial, textType)
	require.NotNil(t, derived)
	assert.Equal(t, "C30/37", derived.Grade)

	textType, derived = Classify("STEEL S355")
	require.Equal(t, TypeMaterial, textType)
	require.NotNil(t, derived)
	assert.Equal(t, "S355", derived.Grade)
}

func TestClassifyMaterialWithoutGrade(t *testing.T) {
	textType, derived := Classify("TIMBER")
	require.Equal(t, TypeMaterial, textType)
	assert.Nil(t, derived)
}
