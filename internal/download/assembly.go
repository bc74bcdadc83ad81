// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"
	"errors"
	"fmt"

	"github.com/Code-Poets/latex-online/internal/datauri"
	"github.com/Code-Poets/latex-online/internal/transform"
	"github.com/Code-Poets/latex-online/pkg/types"
)

// plannedTransform is one tool invocation.
type plannedTransform struct {
	image types.FileName
	opts  []transform.Option
}

// assemblyJob writes the payload text, then every image, then runs the
// transforms. Failures while writing delete the folder; failures while
// transforming keep it.
func (m *Manager) assemblyJob(payload *Payload, fileName types.FileName) job {
	tool := transform.NewTool(m.tools.Inkscape, m.runner)

	return func(ctx context.Context, folder types.FilesystemPath) Result {
		if payload == nil {
			return internalFailure(fmt.Errorf("%w: nil payload", ErrInvalidPayload))
		}
		if err := fileName.Validate(); err != nil {
			return internalFailure(err)
		}
		if err := m.mkdir(folder); err != nil {
			return internalFailure(err)
		}
		if err := m.writeFile(folder, fileName, []byte(payload.Text)); err != nil {
			m.removeFolder(folder)
			return internalFailure(err)
		}

		for _, img := range payload.Images {
			res, err := datauri.Parse(img.ImageDataURL)
			if err != nil {
				m.removeFolder(folder)
				return failed(&Failure{Kind: KindInvalidImageData, ImageName: img.Name, Cause: err})
			}
			if err := m.writeFile(folder, img.Name, res.Data); err != nil {
				m.removeFolder(folder)
				return internalFailure(err)
			}
		}

		plan, failure := m.planTransforms(payload.Images)
		if failure != nil {
			return failed(failure)
		}

		for _, p := range plan {
			m.logger.Debug("transforming image", "image", p.image, "command", tool.Command(folder, p.image, p.opts).String())
			if err := tool.Apply(ctx, folder, p.image, p.opts); err != nil {
				m.logger.Error("image transform failed", "image", p.image, "error", err)
				return failed(&Failure{Kind: KindInternal, ImageName: p.image, Cause: err})
			}
		}

		return success(folder)
	}
}

// planTransforms validates every transform before any is run.
func (m *Manager) planTransforms(images []Image) ([]plannedTransform, *Failure) {
	var plan []plannedTransform
	for _, img := range images {
		opts, err := transform.Parse(img.Transform)
		if err != nil {
			f := &Failure{Kind: KindInternal, ImageName: img.Name, Cause: err}
			var optErr *transform.OptionError
			if errors.As(err, &optErr) {
				f.Option = optErr.Option
			}
			m.logger.Error("transform option rejected", "image", img.Name, "option", f.Option, "error", err)
			return nil, f
		}
		if len(opts) == 0 {
			continue
		}
		plan = append(plan, plannedTransform{image: img.Name, opts: opts})
	}
	return plan, nil
}
