package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{path: "milk/1.jpg", expected: "milk/1.jpg"},
		{path: "/milk/1.jpg", expected: "milk/1.jpg"},
		{path: "gs://grocery-images/milk/1.jpg", expected: "milk/1.jpg"},
		{path: "s3://grocery-images/milk/1.jpg", expected: "milk/1.jpg"},
		{path: "  milk/1.jpg ", expected: "milk/1.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, ObjectKeyFromPath("grocery-images", tt.path))
		})
	}
}
