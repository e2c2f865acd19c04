package params

// The T210 tables bring LPDDR4 up at 204 MHz from PLLM. The full-speed
// tables are loaded later by the frequency switch code, which is not part of
// this package.
func t210Base() map[Param]uint32 {
	return map[Param]uint32{
		PllmInputDivider:    0x02,
		PllmFeedbackDivider: 0x55,
		PllmPostDivider:     0x00,
		PllmSetupControl:    0x00000000,
		PllmKcpKvco:         0x00000005,
		PllmStableWait:      300,
		EmcClockSource:      0x0000000E,
		EmcClockSourceDll:   0x0000000E,

		PmcDdrPwr:            0x00000003,
		PmcVddpSel:           0x00000001,
		PmcVddpSelWait:       2,
		PmcDdrCfg:            0x04220100,
		PmcNoIoPower:         0x00000000,
		PmcIoDpdReqWait:      5,
		PmcWeakBias:          0x00000000,
		EmcPmacroBgBiasCtrl0: 0x00000000,
		EmcPmacroVttgenCtrl0: 0x00090000,

		EmcRc:                0x0000000C,
		EmcRfc:               0x0000003A,
		EmcRas:               0x00000009,
		EmcRp:                0x00000004,
		EmcR2w:               0x00000009,
		EmcW2r:               0x0000000A,
		EmcR2p:               0x00000001,
		EmcW2p:               0x0000000B,
		EmcRdRcd:             0x00000004,
		EmcWrRcd:             0x00000004,
		EmcRrd:               0x00000002,
		EmcRext:              0x00000003,
		EmcWdv:               0x00000002,
		EmcQuse:              0x00000006,
		EmcRdv:               0x0000000E,
		EmcRefresh:           0x0000031B,
		EmcBurstRefreshNum:   0x00000000,
		EmcPdex2Wr:           0x00000002,
		EmcPdex2Rd:           0x00000002,
		EmcTxsr:              0x0000003C,
		EmcTcke:              0x00000002,
		EmcTfaw:              0x00000008,
		EmcTrpab:             0x00000005,
		EmcTclkStable:        0x00000004,
		EmcTclkStop:          0x00000003,
		EmcTrefBw:            0x0000033B,
		EmcFbioCfg5:          0x9160A00D,
		EmcCfg:               0x73300000,
		EmcDbg:               0x01000C00,
		EmcTimingControlWait: 1,

		McEmemAdrCfg:            0x00000001,
		McEmemCfg:               0x00001000,
		McEmemArbCfg:            0x0E00000B,
		McEmemArbOutstandingReq: 0x80000040,
		McEmemArbTimingRcd:      0x00000002,
		McEmemArbTimingRp:       0x00000003,
		McEmemArbTimingRc:       0x00000006,
		McEmemArbTimingRas:      0x00000004,
		McEmemArbTimingFaw:      0x00000005,
		McEmemArbTimingRrd:      0x00000001,
		McEmemArbTimingR2w:      0x00000006,
		McEmemArbTimingW2r:      0x00000007,
		McEmemArbMisc0:          0x07020000,

		EmcXm2CompPadCtrl:     0x00000049,
		EmcPmacroPadCfgCtrl:   0x00020000,
		EmcPmacroDataPadTxCtl: 0x02000111,
		EmcAutoCalConfig:      0x201A51D8,
		EmcAutoCalConfig2:     0x05500000,
		EmcAutoCalConfig3:     0x00770000,
		EmcAutoCalVrefSel0:    0xB3AFA6B3,
		EmcAutoCalInterval:    0x001FFFFF,
		EmcAutoCalWait:        1,

		EmcPinGpioEn:      0x00000003,
		EmcPinGpio:        0x00000003,
		EmcPinResetWait:   200,
		EmcPinProgramWait: 2000,
		EmcPinExtraWait:   2,

		EmcMrw1:    MRW(1, 0x54),
		EmcMrw2:    MRW(2, 0x00),
		EmcMrw3:    MRW(3, 0x31),
		EmcMrw11:   MRW(11, 0x00),
		EmcMrw12:   MRW(12, 0x4D),
		EmcMrw13:   MRW(13, 0x00),
		EmcMrw14:   MRW(14, 0x4D),
		EmcMrw22:   MRW(22, 0x00),
		EmcMrwWait: 1,

		EmcZcalInterval:        0x00064000,
		EmcZcalWaitCnt:         0x000900CC,
		EmcZcalInitDev0:        0x80000001,
		EmcZcalInitDev1:        0x40000001,
		EmcZcalInitWait:        1,
		EmcZqCalLpddr4WarmBoot: 0x00000001,

		EmcDynSelfRefControl: 0x80000C4E,
		EmcTrainingCtrl:      0x0000000F,
	}
}

func t210Records() map[Resolved]Record {
	base := t210Base()

	samsung4 := buildRecord(RevisionA, base, nil)
	samsung4.Name = "4GB Samsung K4F6E304HB-MGCH"
	samsung4.Vendor = VendorSamsung

	hynix4 := buildRecord(RevisionA, base, map[Param]uint32{
		EmcQuse:            0x00000007,
		EmcAutoCalVrefSel0: 0xB3AFA4B3,
		EmcMrw12:           MRW(12, 0x4C),
		EmcMrw14:           MRW(14, 0x4C),
	})
	hynix4.Name = "4GB Hynix H9HCNNNBPUMLHR-NLE"
	hynix4.Vendor = VendorHynix

	micron4 := buildRecord(RevisionA, base, map[Param]uint32{
		EmcRdv:             0x0000000F,
		EmcMrw3:            MRW(3, 0x33),
		EmcMrw12:           MRW(12, 0x4B),
		EmcMrw14:           MRW(14, 0x4B),
		EmcAutoCalVrefSel0: 0xB3AFA2B3,
		McEmemArbTimingR2w: 0x00000007,
	})
	micron4.Name = "4GB Micron MT53B512M32D2NP-062 WT:C"
	micron4.Vendor = VendorMicron

	samsung6 := buildRecord(RevisionA, base, map[Param]uint32{
		EmcRfc:             0x0000004E,
		EmcTxsr:            0x00000052,
		McEmemAdrCfg:       0x00000000,
		McEmemCfg:          0x00001800,
		McEmemArbTimingRc:  0x00000007,
		McEmemArbTimingFaw: 0x00000006,
	})
	samsung6.Name = "6GB Samsung K4FHE3D4HM-MGCH"
	samsung6.Vendor = VendorSamsung
	samsung6.SizeMB = 6144

	records := map[Resolved]Record{
		Direct(0): samsung4,
		Direct(1): hynix4,
		Direct(2): micron4,
		Direct(4): samsung6,
	}

	for r, rec := range records {
		rec.Protocol = LPDDR4
		rec.RateMbps = 3200
		if rec.SizeMB == 0 {
			rec.SizeMB = 4096
		}
		rec.Density = densityForSize(rec.SizeMB)
		records[r] = rec
	}

	return records
}
