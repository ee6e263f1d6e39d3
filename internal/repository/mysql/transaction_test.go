package mysql

import (
	"errors"
	"fmt"
	"testing"

	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateEntry(t *testing.T) {
	dup := &driver.MySQLError{Number: duplicateEntry, Message: "Duplicate entry"}

	assert.True(t, isDuplicateEntry(dup))
	assert.True(t, isDuplicateEntry(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isDuplicateEntry(&driver.MySQLError{Number: 1452}))
	assert.False(t, isDuplicateEntry(errors.New("Duplicate entry")))
	assert.False(t, isDuplicateEntry(nil))
}
