package models_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/phytosim/internal/dynamo"
	"github.com/san-kum/phytosim/internal/integrators"
	"github.com/san-kum/phytosim/internal/models"
)

var _ = Describe("Remediation", func() {
	var dyn *models.Remediation

	BeforeEach(func() {
		dyn = models.NewRemediation(models.DefaultParams())
	})

	Describe("DefaultParams", func() {
		It("matches the reference coefficients", func() {
			p := models.DefaultParams()
			Expect(p.R).To(Equal(2.0))
			Expect(p.K).To(Equal(8000.0))
			Expect(p.C).To(Equal(0.8))
			Expect(p.BTox).To(Equal(7500.0))
			Expect(p.U).To(Equal(1.0 / 50000))
			Expect(p.Delta).To(BeZero())
			Expect(p.L).To(Equal(0.03))
			Expect(p.Validate()).To(Succeed())
		})

		It("exposes every coefficient by name", func() {
			Expect(dyn.GetParams()).To(HaveLen(7))
			Expect(dyn.GetParams()).To(HaveKeyWithValue("b_tox", 7500.0))
		})
	})

	Describe("Derive", func() {
		It("evaluates the growth and uptake equations", func() {
			x := dynamo.State{A: 100, N: 5000}
			d := dyn.Derive(x, 0)

			wantA := 2.0*100*(1-100.0/8000) - (0.8*5000*100)/(7500+5000)
			wantN := -(1.0/50000)*100*5000 + 0*100 - 0.03*5000
			Expect(d.A).To(BeNumerically("~", wantA, 1e-12))
			Expect(d.N).To(BeNumerically("~", wantN, 1e-12))
		})

		It("ignores time", func() {
			x := dynamo.State{A: 2500, N: 900}
			Expect(dyn.Derive(x, 0)).To(Equal(dyn.Derive(x, 42)))
		})

		It("has no biomass growth without seed biomass", func() {
			d := dyn.Derive(dynamo.State{A: 0, N: 5000}, 0)
			Expect(d.A).To(BeZero())
			Expect(d.N).To(BeNumerically("~", -0.03*5000, 1e-12))
		})

		It("adds contaminant in proportion to biomass when delta is set", func() {
			p := models.DefaultParams()
			p.Delta = 0.5
			d := models.NewRemediation(p).Derive(dynamo.State{A: 10, N: 0}, 0)
			Expect(d.N).To(BeNumerically("~", 5, 1e-12))
		})
	})

	Describe("integrated behaviour", func() {
		span := dynamo.Span{Start: 0, End: 20}

		It("keeps biomass at exactly zero when none is planted", func() {
			traj, err := integrators.Integrate(dyn, dynamo.State{A: 0, N: 5000}, span, 0.1)
			Expect(err).NotTo(HaveOccurred())
			for _, a := range traj.Biomass {
				Expect(a).To(Equal(0.0))
			}
		})

		It("follows logistic growth on clean soil", func() {
			a0 := 100.0
			traj, err := integrators.Integrate(dyn, dynamo.State{A: a0, N: 0}, span, 0.1)
			Expect(err).NotTo(HaveOccurred())

			p := models.DefaultParams()
			for i, t := range traj.Times {
				logistic := p.K / (1 + (p.K/a0-1)*math.Exp(-p.R*t))
				Expect(traj.Biomass[i]).To(BeNumerically("~", logistic, 1e-3*p.K))
				Expect(traj.Contaminant[i]).To(BeZero())
			}

			_, last, _ := traj.Final()
			Expect(last.A).To(BeNumerically("~", p.K, 1))
		})
	})

	Describe("Validate", func() {
		DescribeTable("rejects unusable coefficients",
			func(mutate func(*models.Params)) {
				p := models.DefaultParams()
				mutate(&p)
				err := p.Validate()
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
			},
			Entry("zero carrying capacity", func(p *models.Params) { p.K = 0 }),
			Entry("zero half-saturation", func(p *models.Params) { p.BTox = 0 }),
			Entry("negative half-saturation", func(p *models.Params) { p.BTox = -1 }),
			Entry("NaN growth rate", func(p *models.Params) { p.R = math.NaN() }),
			Entry("infinite uptake", func(p *models.Params) { p.U = math.Inf(1) }),
		)
	})
})
