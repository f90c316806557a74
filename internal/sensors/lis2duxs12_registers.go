// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

// BitField describes one field of a register for the debug UI.
type BitField struct {
	Bits        string `json:"bits"` // "7" or "7:4"
	Name        string `json:"name"`
	Description string `json:"description"`
	Values      string `json:"values,omitempty"`
}

// RegisterInfo is the metadata of one register.
type RegisterInfo struct {
	Address     string     `json:"address"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access"` // "R", "W", "RW"
	Default     string     `json:"default,omitempty"`
	BitFields   []BitField `json:"bit_fields,omitempty"`
}

// Writable reports whether the register accepts writes.
func (r RegisterInfo) Writable() bool {
	return r.Access == "RW" || r.Access == "W"
}

// lis2duxs12RegisterMap returns metadata for the main-bank LIS2DUXS12
// registers.
func lis2duxs12RegisterMap() []RegisterInfo {
	return []RegisterInfo{
		// Interface
		{Address: "0x0C", Name: "PIN_CTRL", Description: "Pin configuration", Access: "RW", Default: "0x63",
			BitFields: []BitField{
				{Bits: "7", Name: "SDO_PU_EN", Description: "SDO pull-up", Values: "0=Disconnected, 1=Connected"},
				{Bits: "6", Name: "SDA_PU_EN", Description: "SDA pull-up", Values: "0=Disconnected, 1=Connected"},
				{Bits: "5", Name: "PD_DIS_INT2", Description: "INT2 pull-down disable", Values: "0=Pull-down, 1=Disabled"},
				{Bits: "4", Name: "PD_DIS_INT1", Description: "INT1 pull-down disable", Values: "0=Pull-down, 1=Disabled"},
				{Bits: "3", Name: "H_LACTIVE", Description: "Interrupt polarity", Values: "0=Active high, 1=Active low"},
				{Bits: "2", Name: "CS_PU_DIS", Description: "CS pull-up disable", Values: "0=Pull-up, 1=Disabled"},
				{Bits: "1", Name: "PP_OD", Description: "INT pad mode", Values: "0=Push-pull, 1=Open drain"},
				{Bits: "0", Name: "SIM", Description: "SPI mode", Values: "0=4-wire, 1=3-wire"},
			}},
		{Address: "0x0E", Name: "WAKE_UP_DUR_EXT", Description: "Wake-up duration extension", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "4", Name: "WU_DUR_EXTENDED", Description: "Extended wake-up duration", Values: "0=1/2/3/7 ODR, 1=3/7/11/15 ODR"},
			}},
		{Address: "0x0F", Name: "WHO_AM_I", Description: "Device identification", Access: "R", Default: "0x47"},

		// Control
		{Address: "0x10", Name: "CTRL1", Description: "Control register 1", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "6", Name: "INT1_ON_RES", Description: "INT1 as input for wake-up", Values: "0=Interrupt, 1=Input"},
				{Bits: "5", Name: "SW_RESET", Description: "Software reset", Values: "1=Reset"},
				{Bits: "4", Name: "IF_ADD_INC", Description: "Address auto-increment", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "DRDY_PULSED", Description: "Data-ready mode", Values: "0=Latched, 1=Pulsed"},
				{Bits: "2", Name: "WU_X_EN", Description: "Wake-up on X", Values: "0=Disabled, 1=Enabled"},
				{Bits: "1", Name: "WU_Y_EN", Description: "Wake-up on Y", Values: "0=Disabled, 1=Enabled"},
				{Bits: "0", Name: "WU_Z_EN", Description: "Wake-up on Z", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x11", Name: "CTRL2", Description: "INT1 routing", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "INT1_BOOT", Description: "Boot status on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6", Name: "INT1_FIFO_FULL", Description: "FIFO full on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "INT1_FIFO_TH", Description: "FIFO threshold on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "4", Name: "INT1_FIFO_OVR", Description: "FIFO overrun on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "INT1_DRDY", Description: "Data-ready on INT1", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x12", Name: "CTRL3", Description: "Self-test sign, HP enable, INT2 routing", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "INT2_BOOT", Description: "Boot status on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6", Name: "INT2_FIFO_FULL", Description: "FIFO full on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "INT2_FIFO_TH", Description: "FIFO threshold on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "4", Name: "INT2_FIFO_OVR", Description: "FIFO overrun on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "INT2_DRDY", Description: "Data-ready on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "2", Name: "HP_EN", Description: "High-performance mode", Values: "0=Low power, 1=High performance"},
				{Bits: "1", Name: "ST_SIGN_Y", Description: "Self-test sign Y", Values: ""},
				{Bits: "0", Name: "ST_SIGN_X", Description: "Self-test sign X", Values: ""},
			}},
		{Address: "0x13", Name: "CTRL4", Description: "Control register 4", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:6", Name: "INACT_ODR", Description: "ODR in sleep state", Values: "0=Unchanged, 1=1.6Hz, 2=3Hz, 3=25Hz"},
				{Bits: "5", Name: "BDU", Description: "Block data update", Values: "0=Continuous, 1=Until read"},
				{Bits: "4", Name: "EMB_FUNC_EN", Description: "Embedded functions", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "FIFO_EN", Description: "FIFO", Values: "0=Disabled, 1=Enabled"},
				{Bits: "1", Name: "SOC", Description: "Start one-shot conversion", Values: "1=Trigger"},
				{Bits: "0", Name: "BOOT", Description: "Reboot memory content", Values: "1=Reboot"},
			}},
		{Address: "0x14", Name: "CTRL5", Description: "Output data rate, bandwidth, full scale", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:4", Name: "ODR", Description: "Output data rate", Values: "0=Power down, 1=1.6Hz ULP, 2=3Hz ULP, 3=25Hz ULP, 4=6Hz ... 10=800Hz, 14=One-shot pin, 15=One-shot SW"},
				{Bits: "3:2", Name: "BW", Description: "Anti-aliasing bandwidth", Values: "0=ODR/2, 1=ODR/4, 2=ODR/8, 3=ODR/16"},
				{Bits: "1:0", Name: "FS", Description: "Full scale", Values: "0=±2g, 1=±4g, 2=±8g, 3=±16g"},
			}},

		// FIFO
		{Address: "0x15", Name: "FIFO_CTRL", Description: "FIFO control", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "CFG_CHG_IN_FIFO", Description: "Store configuration changes", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6", Name: "FIFO_DEPTH", Description: "FIFO depth", Values: "0=1X, 1=2X"},
				{Bits: "3", Name: "STOP_ON_FTH", Description: "Limit depth to threshold", Values: "0=Disabled, 1=Enabled"},
				{Bits: "2:0", Name: "FIFO_MODE", Description: "FIFO mode", Values: "0=Bypass, 1=FIFO, 3=Stream-to-FIFO, 4=Bypass-to-Stream, 6=Stream, 7=Bypass-to-FIFO"},
			}},
		{Address: "0x16", Name: "FIFO_WTM", Description: "FIFO watermark", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "XL_ONLY_FIFO", Description: "Accelerometer only", Values: "0=XL and temperature, 1=XL only"},
				{Bits: "6:0", Name: "FTH", Description: "FIFO threshold", Values: "0-127"},
			}},

		// Events
		{Address: "0x17", Name: "INTERRUPT_CFG", Description: "Interrupt configuration", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "TIMESTAMP_EN", Description: "Timestamp counter", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "WAKE_THS_W", Description: "Wake-up threshold weight", Values: "0=FS/64, 1=FS/256"},
				{Bits: "3", Name: "SLEEP_STATUS_ON_INT", Description: "Sleep status on INT", Values: "0=Sleep change, 1=Sleep status"},
				{Bits: "2", Name: "DIS_RST_LIR_ALL_INT", Description: "Keep latch on ALL_INT_SRC read", Values: ""},
				{Bits: "1", Name: "LIR", Description: "Latched interrupts", Values: "0=Pulsed, 1=Latched"},
				{Bits: "0", Name: "INTERRUPTS_ENABLE", Description: "Basic interrupts", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x18", Name: "SIXD", Description: "6D configuration", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "D4D_EN", Description: "4D mode", Values: "0=6D, 1=4D"},
				{Bits: "6:5", Name: "D6D_THS", Description: "6D threshold", Values: "0=80°, 1=70°, 2=60°, 3=50°"},
			}},
		{Address: "0x1C", Name: "WAKE_UP_THS", Description: "Wake-up threshold", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "6", Name: "SLEEP_ON", Description: "Sleep detection", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5:0", Name: "WK_THS", Description: "Wake-up threshold", Values: "0-63, weight per WAKE_THS_W"},
			}},
		{Address: "0x1D", Name: "WAKE_UP_DUR", Description: "Wake-up and sleep duration", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "FF_DUR5", Description: "Free-fall duration bit 5", Values: ""},
				{Bits: "6:5", Name: "WAKE_DUR", Description: "Wake-up duration", Values: "0-3"},
				{Bits: "4", Name: "ST_SIGN_Z", Description: "Self-test sign Z", Values: ""},
				{Bits: "3:0", Name: "SLEEP_DUR", Description: "Sleep duration", Values: "0-15, 1 LSB = 512/ODR"},
			}},
		{Address: "0x1E", Name: "FREE_FALL", Description: "Free-fall configuration", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:3", Name: "FF_DUR", Description: "Free-fall duration bits 4:0", Values: "0-31"},
				{Bits: "2:0", Name: "FF_THS", Description: "Free-fall threshold", Values: "0=156mg, 1=219mg, 2=250mg, 3=312mg, 4=344mg, 5=406mg, 6=469mg, 7=500mg"},
			}},
		{Address: "0x1F", Name: "MD1_CFG", Description: "INT1 event routing", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "INT1_SLEEP_CHANGE", Description: "Sleep change on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "INT1_WU", Description: "Wake-up on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "4", Name: "INT1_FF", Description: "Free-fall on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "INT1_TAP", Description: "Tap on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "2", Name: "INT1_6D", Description: "6D on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "1", Name: "INT1_TIMESTAMP", Description: "Timestamp on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "0", Name: "INT1_EMB_FUNC", Description: "Embedded functions on INT1", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x20", Name: "MD2_CFG", Description: "INT2 event routing", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "INT2_SLEEP_CHANGE", Description: "Sleep change on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "INT2_WU", Description: "Wake-up on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "4", Name: "INT2_FF", Description: "Free-fall on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "INT2_TAP", Description: "Tap on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "2", Name: "INT2_6D", Description: "6D on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "1", Name: "INT2_TIMESTAMP", Description: "Timestamp on INT2", Values: "0=Disabled, 1=Enabled"},
				{Bits: "0", Name: "INT2_EMB_FUNC", Description: "Embedded functions on INT2", Values: "0=Disabled, 1=Enabled"},
			}},

		// Status (read only)
		{Address: "0x21", Name: "WAKE_UP_SRC", Description: "Wake-up source", Access: "R",
			BitFields: []BitField{
				{Bits: "6", Name: "SLEEP_CHANGE_IA", Description: "Sleep change detected"},
				{Bits: "5", Name: "FF_IA", Description: "Free-fall detected"},
				{Bits: "4", Name: "SLEEP_STATE", Description: "Sleep state"},
				{Bits: "3", Name: "WU_IA", Description: "Wake-up detected"},
				{Bits: "2", Name: "X_WU", Description: "Wake-up on X"},
				{Bits: "1", Name: "Y_WU", Description: "Wake-up on Y"},
				{Bits: "0", Name: "Z_WU", Description: "Wake-up on Z"},
			}},
		{Address: "0x22", Name: "TAP_SRC", Description: "Tap source", Access: "R"},
		{Address: "0x23", Name: "SIXD_SRC", Description: "6D source", Access: "R",
			BitFields: []BitField{
				{Bits: "6", Name: "D6D_IA", Description: "Orientation change detected"},
				{Bits: "5", Name: "ZH", Description: "Z over threshold"},
				{Bits: "4", Name: "ZL", Description: "Z under threshold"},
				{Bits: "3", Name: "YH", Description: "Y over threshold"},
				{Bits: "2", Name: "YL", Description: "Y under threshold"},
				{Bits: "1", Name: "XH", Description: "X over threshold"},
				{Bits: "0", Name: "XL", Description: "X under threshold"},
			}},
		{Address: "0x24", Name: "ALL_INT_SRC", Description: "All interrupt sources", Access: "R",
			BitFields: []BitField{
				{Bits: "6", Name: "SLEEP_CHANGE_IA_ALL", Description: "Sleep change"},
				{Bits: "5", Name: "D6D_IA_ALL", Description: "6D"},
				{Bits: "4", Name: "TRIPLE_TAP_ALL", Description: "Triple tap"},
				{Bits: "3", Name: "DOUBLE_TAP_ALL", Description: "Double tap"},
				{Bits: "2", Name: "SINGLE_TAP_ALL", Description: "Single tap"},
				{Bits: "1", Name: "WU_IA_ALL", Description: "Wake-up"},
				{Bits: "0", Name: "FF_IA_ALL", Description: "Free-fall"},
			}},
		{Address: "0x25", Name: "STATUS", Description: "Status", Access: "R",
			BitFields: []BitField{
				{Bits: "5", Name: "INT_GLOBAL", Description: "Any interrupt active"},
				{Bits: "0", Name: "DRDY", Description: "New data available"},
			}},
		{Address: "0x26", Name: "FIFO_STATUS1", Description: "FIFO status", Access: "R",
			BitFields: []BitField{
				{Bits: "7", Name: "FIFO_WTM_IA", Description: "Watermark reached"},
				{Bits: "6", Name: "FIFO_OVR_IA", Description: "FIFO overrun"},
			}},
		{Address: "0x27", Name: "FIFO_STATUS2", Description: "Unread FIFO slots", Access: "R"},

		// Output (read only)
		{Address: "0x28", Name: "OUT_X_L", Description: "Acceleration X low byte", Access: "R"},
		{Address: "0x29", Name: "OUT_X_H", Description: "Acceleration X high byte", Access: "R"},
		{Address: "0x2A", Name: "OUT_Y_L", Description: "Acceleration Y low byte", Access: "R"},
		{Address: "0x2B", Name: "OUT_Y_H", Description: "Acceleration Y high byte", Access: "R"},
		{Address: "0x2C", Name: "OUT_Z_L", Description: "Acceleration Z low byte", Access: "R"},
		{Address: "0x2D", Name: "OUT_Z_H", Description: "Acceleration Z high byte", Access: "R"},
		{Address: "0x2E", Name: "OUT_T_AH_QVAR_L", Description: "Temperature or QVAR low byte", Access: "R"},
		{Address: "0x2F", Name: "OUT_T_AH_QVAR_H", Description: "Temperature or QVAR high byte", Access: "R"},

		{Address: "0x31", Name: "AH_QVAR_CFG", Description: "QVAR configuration", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "AH_QVAR_EN", Description: "QVAR chain", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6", Name: "AH_QVAR_NOTCH_EN", Description: "Notch filter", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "AH_QVAR_NOTCH_CUTOFF", Description: "Notch cutoff", Values: "0=50Hz, 1=60Hz"},
				{Bits: "4:3", Name: "AH_QVAR_C_ZIN", Description: "Input impedance", Values: "0=520MΩ, 1=175MΩ, 2=310MΩ, 3=75MΩ"},
				{Bits: "2:1", Name: "AH_QVAR_GAIN", Description: "Gain", Values: "0=0.5, 1=1, 2=2, 3=4"},
			}},
		{Address: "0x32", Name: "SELF_TEST", Description: "Self-test", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "5:4", Name: "ST", Description: "Self-test step", Values: "0=Off, 1=Positive, 2=Negative"},
			}},
		{Address: "0x33", Name: "I3C_IF_CTRL", Description: "I3C interface", Access: "RW", Default: "0x80",
			BitFields: []BitField{
				{Bits: "6", Name: "DIS_DRSTDAA", Description: "Keep dynamic address on RSTDAA", Values: ""},
				{Bits: "5", Name: "ASF_ON", Description: "Antispike filter", Values: "0=Off, 1=On"},
				{Bits: "1:0", Name: "BUS_ACT_SEL", Description: "Bus available time", Values: "0=50us, 1=2us, 2=1ms, 3=25ms"},
			}},
		{Address: "0x34", Name: "EMB_FUNC_STATUS_MAINPAGE", Description: "Embedded function status", Access: "R"},
		{Address: "0x3D", Name: "SLEEP", Description: "Deep power down", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "0", Name: "DEEP_PD", Description: "Enter deep power down", Values: "1=Enter"},
			}},
		{Address: "0x3E", Name: "IF_WAKE_UP", Description: "SPI wake-up", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "0", Name: "SOFT_PD", Description: "Exit deep power down", Values: "1=Exit"},
			}},
		{Address: "0x3F", Name: "FUNC_CFG_ACCESS", Description: "Register bank selection", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "EMB_FUNC_REG_ACCESS", Description: "Bank", Values: "0=Main, 1=Embedded functions"},
				{Bits: "0", Name: "FSM_WR_CTRL_EN", Description: "FSM control write", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x40", Name: "FIFO_DATA_OUT_TAG", Description: "FIFO tag", Access: "R"},
		{Address: "0x47", Name: "FIFO_BATCH_DEC", Description: "FIFO batching", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "4:3", Name: "DEC_TS_BATCH", Description: "Timestamp decimation", Values: "0=Off, 1=1, 2=8, 3=32"},
				{Bits: "2:0", Name: "BDR_XL", Description: "Accelerometer batch rate", Values: "0=ODR, 1=ODR/2 ... 6=ODR/64, 7=Off"},
			}},
		{Address: "0x7A", Name: "TIMESTAMP0", Description: "Timestamp byte 0", Access: "R"},
		{Address: "0x7B", Name: "TIMESTAMP1", Description: "Timestamp byte 1", Access: "R"},
		{Address: "0x7C", Name: "TIMESTAMP2", Description: "Timestamp byte 2", Access: "R"},
		{Address: "0x7D", Name: "TIMESTAMP3", Description: "Timestamp byte 3", Access: "R"},
	}
}
