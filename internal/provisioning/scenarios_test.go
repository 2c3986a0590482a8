package provisioning_test

import (
	"context"
	"errors"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/volplan/internal/config"
	"github.com/imamik/volplan/internal/plan"
	"github.com/imamik/volplan/internal/platform/secrets"
	"github.com/imamik/volplan/internal/provisioning"
	"github.com/imamik/volplan/internal/provisioning/dryrun"
	ebsphase "github.com/imamik/volplan/internal/provisioning/ebs"
	lvmphase "github.com/imamik/volplan/internal/provisioning/lvm"
	vtesting "github.com/imamik/volplan/internal/testing"
)

const mirroredStripesJSON = `{
  "lvm_volume_groups": [{
    "name": "fast",
    "physical_volumes": ["/dev/sdb", "/dev/sdc"],
    "logical_volumes": [{
      "name": "wal",
      "mirror": 1,
      "corelog": true,
      "stripes": 2,
      "stripe_size": "64",
      "logical_extents": "50%VG"
    }]
  }]
}`

func modeOf(h *dryrun.Host, path string) os.FileMode {
	mode, ok := h.DirectoryMode(path)
	Expect(ok).To(BeTrue(), "directory %s does not exist", path)
	return mode
}

func filesystemOf(h *dryrun.Host, device string) string {
	fstype, ok := h.Filesystem(device)
	Expect(ok).To(BeTrue(), "%s is not formatted", device)
	return fstype
}

var _ = Describe("Applying volume plans", func() {
	var (
		host     *dryrun.Host
		registry plan.StaticRegistry
		store    secrets.StaticProvider
		observer *vtesting.RecordingObserver
	)

	apply := func(names ...string) error {
		ctx := provisioning.NewContext(context.Background(), config.Default(), observer)
		applier := provisioning.NewApplier(registry,
			ebsphase.NewPhase(store, host),
			lvmphase.NewPhase(host, host),
		)
		return applier.Apply(ctx, names)
	}

	BeforeEach(func() {
		host = dryrun.NewHost()
		registry = plan.StaticRegistry{}
		store = secrets.StaticProvider(vtesting.ValidCredentials())
		observer = vtesting.NewRecordingObserver()
	})

	Context("on a fresh host", func() {
		BeforeEach(func() {
			registry["db-tier"] = vtesting.DBTierPlan()
		})

		It("declares the volume stack in order", func() {
			Expect(apply("db-tier")).To(Succeed())

			Expect(host.Operations()).To(Equal([]string{
				"pvcreate /dev/sdb",
				"vgcreate data",
				"lvcreate data/logs",
				"mkfs /dev/mapper/data-logs",
				"directory /mnt/logs",
				"mount /mnt/logs",
				"enable /mnt/logs",
				"directory /mnt/logs",
			}))
			Expect(filesystemOf(host, "/dev/mapper/data-logs")).To(Equal("xfs"))
			Expect(host.Mounted("/mnt/logs")).To(BeTrue())
			Expect(modeOf(host, "/mnt/logs")).To(Equal(lvmphase.MountPointMode))
		})

		It("never formats on a second run", func() {
			Expect(apply("db-tier")).To(Succeed())
			host.Calls = nil

			By("applying the same plan again")
			Expect(apply("db-tier")).To(Succeed())
			Expect(host.Count("mkfs")).To(BeZero())
			Expect(host.Changes()).To(BeEmpty())
			Expect(modeOf(host, "/mnt/logs")).To(Equal(lvmphase.MountPointMode))
		})

		It("keeps a pre-existing mount point until it is mounted", func() {
			host.AddDirectory("/mnt/logs", 0o755)
			Expect(apply("db-tier")).To(Succeed())

			var modes []string
			for _, c := range host.Calls {
				if c.Operation == "directory" {
					modes = append(modes, c.String())
				}
			}
			Expect(modes).To(Equal([]string{
				"= directory /mnt/logs (0700)",
				"+ directory /mnt/logs (0777)",
			}))
		})
	})

	Context("with unknown plan names", func() {
		It("reports them and applies the rest", func() {
			registry["db-tier"] = vtesting.DBTierPlan()

			Expect(apply("web", "db-tier", "cache")).To(Succeed())

			missing := observer.EventsOfType(provisioning.EventPlanMissing)
			Expect(missing).To(HaveLen(2))
			Expect(missing[0].Message).To(ContainSubstring(`"web"`))
			Expect(missing[1].Message).To(ContainSubstring(`"cache"`))
			Expect(host.Count("lvcreate")).To(Equal(1))
		})

		It("does nothing when no plan is registered", func() {
			Expect(apply("web")).To(Succeed())
			Expect(host.Calls).To(BeEmpty())
		})
	})

	Context("with EBS volumes", func() {
		BeforeEach(func() {
			registry["cloud-tier"] = vtesting.EBSPlan()
			registry["db-tier"] = vtesting.DBTierPlan()
		})

		It("creates cloud volumes before the volume groups on them", func() {
			Expect(apply("cloud-tier")).To(Succeed())
			ops := host.Operations()
			Expect(ops[0]).To(Equal("ebs cloud-data"))
			Expect(ops).To(ContainElement("vgcreate cloud"))
		})

		It("aborts the run when a secret key is empty", func() {
			store["aws.volumes.secret_access_key"] = ""

			err := apply("cloud-tier", "db-tier")
			Expect(err).To(HaveOccurred())
			Expect(provisioning.IsMissingCredentials(err)).To(BeTrue())

			By("leaving the host untouched")
			Expect(host.Calls).To(BeEmpty())
			Expect(observer.EventsAtLevel(provisioning.LevelFatal)).To(HaveLen(1))
		})
	})

	Context("when an operation fails", func() {
		It("stops before later plans", func() {
			registry["db-tier"] = vtesting.DBTierPlan()
			registry["scratch"] = vtesting.NewPlanBuilder("scratch").
				WithGroup("scratch", "/dev/sdc").
				WithVolume("tmp", "100%FREE", "").
				Build()
			host.Fail["mount"] = errors.New("wrong fs type")

			err := apply("db-tier", "scratch")
			Expect(err).To(MatchError(ContainSubstring("volume plan db-tier")))
			Expect(host.Operations()).NotTo(ContainElement("vgcreate scratch"))
			Expect(observer.EventsOfType(provisioning.EventResourceFailed)).To(HaveLen(1))
		})
	})

	Context("with decoded plans", func() {
		It("prefers mirroring over striping", func() {
			p, err := plan.Parse("fast", []byte(mirroredStripesJSON))
			Expect(err).NotTo(HaveOccurred())
			registry["fast"] = p

			Expect(apply("fast")).To(Succeed())
			lvcreate := host.Calls[2]
			Expect(lvcreate.Operation).To(Equal("lvcreate"))
			Expect(lvcreate.Detail).To(Equal("lvcreate --yes -n wal -l 50%VG --type mirror -m 1 --mirrorlog core fast"))
			Expect(host.Count("mkfs")).To(Equal(1))
			Expect(filesystemOf(host, "/dev/mapper/fast-wal")).To(Equal(plan.DefaultFilesystem))
		})
	})
})
