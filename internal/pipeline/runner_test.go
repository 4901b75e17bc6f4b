package pipeline_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/recmat/internal/config"
	"github.com/san-kum/recmat/internal/matrix"
	"github.com/san-kum/recmat/internal/pipeline"
	"github.com/san-kum/recmat/internal/spectrum"
	"github.com/san-kum/recmat/internal/storage"
)

// failingSolver fails for matrices of one dimension and delegates otherwise.
type failingSolver struct {
	dim   int
	inner spectrum.Solver
}

func (s *failingSolver) Eigenvalues(m *matrix.Matrix) ([]float64, error) {
	if m.Size() == s.dim {
		return nil, &spectrum.DecompositionError{Dim: s.dim, Reason: "injected"}
	}
	return s.inner.Eigenvalues(m)
}

var _ = Describe("Runner", func() {
	var (
		dir    string
		layout storage.Layout
		opts   pipeline.Options
	)

	newRunner := func(k int, solver spectrum.Solver) *pipeline.Runner {
		r := pipeline.New(k, solver, layout, opts)
		r.SetOutput(GinkgoWriter, GinkgoWriter)
		return r
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		layout = storage.Layout{
			EigenDir:  filepath.Join(dir, "eigenCSV"),
			MatrixDir: filepath.Join(dir, "exportedMatrices"),
			GraphDir:  filepath.Join(dir, "graphs"),
		}
		opts = pipeline.Options{VerifySymmetry: true, CrossCheck: true}
	})

	Context("with two generations", func() {
		It("writes spectra for every generation and matrices from the second on", func() {
			report, err := newRunner(2, spectrum.NewSymmetricSolver()).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Results).To(HaveLen(2))
			Expect(report.Failed()).To(BeEmpty())
			Expect(report.Solver).To(Equal("gonum-eigensym"))

			Expect(layout.EigenvaluePath(1)).To(BeAnExistingFile())
			Expect(layout.EigenvaluePath(2)).To(BeAnExistingFile())
			Expect(layout.MatrixPath(2)).To(BeAnExistingFile())
			Expect(layout.MatrixPath(1)).NotTo(BeAnExistingFile())
			Expect(layout.SummaryPath()).To(BeAnExistingFile())

			vals, err := storage.ReadEigenvalues(layout.EigenvaluePath(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(vals).To(HaveLen(2))
			Expect(vals[0]).To(BeNumerically("~", 1, 1e-12))
			Expect(vals[1]).To(BeNumerically("~", 3, 1e-12))

			vals, err = storage.ReadEigenvalues(layout.EigenvaluePath(2))
			Expect(err).NotTo(HaveOccurred())
			Expect(vals).To(HaveLen(4))
			Expect(vals[0]).To(BeNumerically("~", -1, 1e-12))
			Expect(vals[3]).To(BeNumerically("~", 3, 1e-12))

			m, err := storage.ReadMatrix(layout.MatrixPath(2))
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Size()).To(Equal(report.Results[1].Dim))
		})

		It("is repeatable over existing output directories", func() {
			for i := 0; i < 2; i++ {
				_, err := newRunner(2, spectrum.NewSymmetricSolver()).Run(context.Background())
				Expect(err).NotTo(HaveOccurred())
			}
		})
	})

	It("notifies observers once per generation in order", func() {
		var seen []int
		r := newRunner(4, spectrum.NewSymmetricSolver())
		r.AddObserver(pipeline.ObserverFunc(func(res *pipeline.GenerationResult) {
			seen = append(seen, res.Generation)
		}))

		_, err := r.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]int{1, 2, 3, 4}))
	})

	Context("when the solver fails for one generation", func() {
		solver := func() spectrum.Solver {
			return &failingSolver{dim: 4, inner: spectrum.NewSymmetricSolver()}
		}

		It("skips that spectrum and keeps going", func() {
			report, err := newRunner(3, solver()).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Results).To(HaveLen(3))

			failed := report.Failed()
			Expect(failed).To(HaveLen(1))
			Expect(failed[0].Generation).To(Equal(2))
			Expect(failed[0].Err).To(MatchError(spectrum.ErrEigenDecomposition))

			var ge *pipeline.GenerationError
			Expect(failed[0].Err).To(BeAssignableToTypeOf(ge))

			Expect(layout.EigenvaluePath(2)).NotTo(BeAnExistingFile())
			Expect(layout.MatrixPath(2)).To(BeAnExistingFile())
			Expect(layout.EigenvaluePath(3)).To(BeAnExistingFile())

			summary, err := storage.LoadSummary(layout.SummaryPath())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Failed()).To(Equal(1))
		})

		It("stops the run under AbortOnError", func() {
			opts.AbortOnError = true
			report, err := newRunner(3, solver()).Run(context.Background())
			Expect(err).To(MatchError(pipeline.ErrAborted))
			Expect(report.Results).To(HaveLen(2))
			Expect(layout.EigenvaluePath(3)).NotTo(BeAnExistingFile())
		})
	})

	Context("when the eigenvalue directory cannot be created", func() {
		BeforeEach(func() {
			blocker := filepath.Join(dir, "blocker")
			Expect(os.WriteFile(blocker, []byte("x"), 0644)).To(Succeed())
			layout.EigenDir = blocker
		})

		It("skips the files and still exports matrices", func() {
			report, err := newRunner(2, spectrum.NewSymmetricSolver()).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Failed()).To(BeEmpty())

			for _, res := range report.Results {
				Expect(res.Eigenvalues).NotTo(BeEmpty())
				Expect(res.Skipped).To(HaveLen(1))
				Expect(res.Skipped[0]).To(MatchError(storage.ErrIO))
			}
			Expect(layout.MatrixPath(2)).To(BeAnExistingFile())
		})
	})

	It("returns the context error when canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := newRunner(3, spectrum.NewSymmetricSolver()).Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
		Expect(report.Results).To(BeEmpty())
	})

	It("refuses to process before building", func() {
		_, err := newRunner(2, spectrum.NewSymmetricSolver()).Process(context.Background(), 1)
		Expect(err).To(MatchError(pipeline.ErrNotBuilt))
	})

	Describe("FromConfig", func() {
		It("rejects an invalid configuration", func() {
			cfg := config.DefaultConfig()
			cfg.Generations = 0
			_, err := pipeline.FromConfig(cfg, spectrum.NewSymmetricSolver())
			Expect(err).To(MatchError(config.ErrInvalidConfig))
		})

		It("carries the configured layout", func() {
			cfg := config.DefaultConfig()
			cfg.Output.EigenDir = layout.EigenDir
			cfg.Output.MatrixDir = layout.MatrixDir
			r, err := pipeline.FromConfig(cfg, spectrum.NewSymmetricSolver())
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Generations()).To(Equal(11))
			Expect(r.Layout().EigenDir).To(Equal(layout.EigenDir))
		})
	})
})
