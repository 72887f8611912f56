package services

import (
  "errors"
  "fmt"
)

// NotFoundError marks a caller-referenced record that does not exist; the
// handler layer maps it to a 404 instead of a 500.
type NotFoundError struct {
  Resource string
  ID       string
}

func (e *NotFoundError) Error() string {
  return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) error {
  return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFound(err error) bool {
  var nf *NotFoundError
  return errors.As(err, &nf)
}
