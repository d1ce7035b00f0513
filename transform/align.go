// Package transform provides planar projective transform estimation and
// application for feature based image alignment: the Homography type, its
// direct-linear-transform estimator, and reprojection scoring over matched
// point sets.
package transform

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// reprojectionWarnThreshold is the mean residual, in coordinate units, above
// which an alignment is logged as suspect.
const reprojectionWarnThreshold = 3.0

// validateCorrespondences checks a correspondence set for use in estimation,
// reporting every fault in the input at once.
func validateCorrespondences(src, dst []r2.Point) error {
	var errs []error
	if len(src) != len(dst) {
		errs = append(errs, errors.Wrapf(ErrShapeMismatch, "%d source points, %d destination points", len(src), len(dst)))
	}
	if len(src) < minHomographyPoints || len(dst) < minHomographyPoints {
		errs = append(errs, errors.Wrapf(ErrInsufficientCorrespondences, "need at least %d pairs", minHomographyPoints))
	}
	return multierr.Combine(errs...)
}

// AlignPointSets estimates the homography mapping matched source points onto
// destination points and scores it with the mean reprojection residual. The
// estimate runs with point conditioning enabled, suited to pixel-scale
// coordinates. Unusually large residuals usually mean the matcher let
// outliers through; they are logged as warnings but the transform is still
// returned, since the caller owns the correspondence quality.
func AlignPointSets(src, dst []r2.Point, logger golog.Logger) (*Homography, error) {
	homography, err := EstimateHomography(src, dst, true)
	if err != nil {
		return nil, err
	}
	residual, err := ReprojectionError(homography, src, dst)
	if err != nil {
		return nil, err
	}
	logger.Debugf("aligned %d correspondences, mean reprojection residual %f", len(src), residual)
	if residual > reprojectionWarnThreshold {
		logger.Warnf("mean reprojection residual %f is large; correspondence set may contain outliers", residual)
	}
	return homography, nil
}
